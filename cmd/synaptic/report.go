package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/synaptic-mem/synaptic/internal/model"
)

var (
	styleHeading = lipgloss.NewStyle().Bold(true)
	styleDim     = lipgloss.NewStyle().Faint(true)
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// stylingEnabled reports whether w is a terminal that can take ANSI
// styling, so piped/redirected output stays plain.
func stylingEnabled(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printReport renders report to w, either as JSON or as a styled summary
// table plus rendered dry-run diff previews.
func printReport(w io.Writer, report *model.SyncReport, asJSON, dryRun bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	plain := !stylingEnabled(w)
	heading := func(s string) string {
		if plain {
			return s
		}
		return styleHeading.Render(s)
	}
	dim := func(s string) string {
		if plain {
			return s
		}
		return styleDim.Render(s)
	}

	fmt.Fprintln(w, heading("synaptic sync"))
	fmt.Fprintf(w, "%s %s\n", dim("commits seen:"), humanize.Comma(int64(report.CommitsSeen)))
	fmt.Fprintf(w, "%s %s\n", dim("commits parsed:"), humanize.Comma(int64(report.CommitsParsed)))
	fmt.Fprintf(w, "%s %s\n", dim("memories extracted:"), humanize.Comma(int64(report.MemoriesExtracted)))
	fmt.Fprintf(w, "%s %s\n", dim("entries added:"), humanize.Comma(int64(report.EntriesAdded)))
	fmt.Fprintf(w, "%s %s\n", dim("entries skipped (duplicate):"), humanize.Comma(int64(report.EntriesSkippedDuplicate)))
	fmt.Fprintf(w, "%s %s\n", dim("files created:"), humanize.Comma(int64(report.FilesCreated)))
	fmt.Fprintf(w, "%s %s\n", dim("files updated:"), humanize.Comma(int64(report.FilesUpdated)))

	for _, warning := range report.Warnings {
		line := "warning: " + warning
		if !plain {
			line = styleWarn.Render(line)
		}
		fmt.Fprintln(w, line)
	}
	for _, errMsg := range report.Errors {
		line := "error: " + errMsg
		if !plain {
			line = styleErr.Render(line)
		}
		fmt.Fprintln(w, line)
	}

	if dryRun && len(report.DryRunPreviews) > 0 {
		fmt.Fprintln(w, heading("\ndry-run previews"))
		targets := make([]string, 0, len(report.DryRunPreviews))
		for t := range report.DryRunPreviews {
			targets = append(targets, t)
		}
		sort.Strings(targets)

		renderer, rendererErr := glamour.NewTermRenderer(glamour.WithAutoStyle())
		for _, target := range targets {
			fmt.Fprintln(w, dim("— "+target+" —"))
			body := report.DryRunPreviews[target]
			if !plain && rendererErr == nil {
				if rendered, err := renderer.Render(body); err == nil {
					fmt.Fprintln(w, strings.TrimRight(rendered, "\n"))
					continue
				}
			}
			fmt.Fprintln(w, body)
		}
	}

	return nil
}
