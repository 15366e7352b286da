package main

import (
	"io"

	"logdoc/internal/diag"
	"logdoc/internal/diagfmt"
)

// printDiagnostics выводит накопленные диагностики после прогона.
// В quiet-режиме текстовые форматы опускают информационные записи.
func printDiagnostics(w io.Writer, bag *diag.Bag, format string, useColor, quiet bool) error {
	if bag == nil {
		return nil
	}
	bag.Sort()

	if format == "json" {
		if bag.Len() == 0 {
			return nil
		}
		return diagfmt.JSON(w, bag, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	}

	shown := bag
	if quiet {
		shown = bag.Filter(diag.SevWarning)
	}
	if format == "short" {
		diagfmt.Short(w, shown, diagfmt.ShortOpts{PathMode: diagfmt.PathModeRelative})
		return nil
	}
	diagfmt.Pretty(w, shown, diagfmt.PrettyOpts{
		Color:     useColor,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	})
	return nil
}
