package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"logdoc/internal/project"
)

type configEntry struct {
	Key    string `json:"key"`
	Env    string `json:"env"`
	Value  string `json:"value"`
	Origin string `json:"origin"`
}

type configPayload struct {
	Manifest string        `json:"manifest,omitempty"`
	DotEnv   []string      `json:"dotenv,omitempty"`
	Settings []configEntry `json:"settings"`
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved settings and where each one comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			format = strings.ToLower(format)
			if format != "pretty" && format != "json" {
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			settings, err := project.Resolve(project.ResolveOptions{StartDir: cwd})
			if err != nil {
				return err
			}
			payload := buildConfigPayload(settings)
			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}
			renderConfigPretty(cmd.OutOrStdout(), payload)
			return nil
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func buildConfigPayload(s *project.Settings) configPayload {
	p := configPayload{DotEnv: s.DotEnv}
	if s.Manifest != nil {
		p.Manifest = s.Manifest.Path
	}
	for _, f := range project.Fields {
		p.Settings = append(p.Settings, configEntry{
			Key:    string(f),
			Env:    f.EnvName(),
			Value:  s.Get(f),
			Origin: s.Origin(f).String(),
		})
	}
	return p
}

func renderConfigPretty(out io.Writer, p configPayload) {
	manifest := p.Manifest
	if manifest == "" {
		manifest = "(none)"
	}
	fmt.Fprintf(out, "manifest: %s\n", manifest)
	for _, path := range p.DotEnv {
		fmt.Fprintf(out, "dotenv:   %s\n", path)
	}
	fmt.Fprintln(out)
	for _, e := range p.Settings {
		fmt.Fprintf(out, "%-12s = %-40q (%s)\n", e.Key, e.Value, e.Origin)
	}
}
