package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"logdoc/internal/driver"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func readUIModeFlag(cmd *cobra.Command) (uiMode, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return "", fmt.Errorf("failed to get ui flag: %w", err)
	}
	return readUIMode(value)
}

// shouldUseTUI: в auto-режиме UI нужен только когда отчёт пишется в файл,
// а stdout и stderr - терминалы.
func shouldUseTUI(mode uiMode, output string) bool {
	switch mode {
	case uiModeOn:
		return output != driver.StdoutPath
	case uiModeOff:
		return false
	default:
		return output != driver.StdoutPath && isTerminal(os.Stdout) && isTerminal(os.Stderr)
	}
}

// readColorFlag resolves --color for stderr and applies it to fatih/color.
func readColorFlag(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	var enabled bool
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	case "", "auto":
		enabled = isTerminal(os.Stderr)
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
	color.NoColor = !enabled
	return enabled, nil
}
