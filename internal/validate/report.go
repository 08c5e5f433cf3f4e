// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f56"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9ca24"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
)

// maxProblemsPerLocale limits how many problems the summary prints for each
// locale before eliding the rest.
const maxProblemsPerLocale = 3

// PrintSummary writes a human-readable validation summary to w.
func (r *Report) PrintSummary(w io.Writer) {
	if len(r.Problems) == 0 {
		fmt.Fprintln(w, okStyle.Render("✓ all validations passed"))
		return
	}

	divider := ruleStyle.Render(strings.Repeat("=", 60))
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, "Validation Summary")
	fmt.Fprintln(w, divider)

	byKind := r.ByKind()
	kinds := make([]string, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		problems := byKind[Kind(kind)]
		errors, warnings := 0, 0
		for _, p := range problems {
			if p.Severity == Error {
				errors++
			} else {
				warnings++
			}
		}
		label := strings.ReplaceAll(kind, "_", " ")
		if errors > 0 {
			fmt.Fprintf(w, "  %s\n", errorStyle.Render(fmt.Sprintf("%s: %d errors", label, errors)))
		}
		if warnings > 0 {
			fmt.Fprintf(w, "  %s\n", warningStyle.Render(fmt.Sprintf("%s: %d warnings", label, warnings)))
		}
	}

	fmt.Fprintln(w, "\nProblems by locale:")
	byLocale := r.ByLocale()
	locales := make([]string, 0, len(byLocale))
	for locale := range byLocale {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	for _, locale := range locales {
		problems := byLocale[locale]
		errors, warnings := 0, 0
		for _, p := range problems {
			if p.Severity == Error {
				errors++
			} else {
				warnings++
			}
		}

		var counts []string
		if errors > 0 {
			counts = append(counts, fmt.Sprintf("%d errors", errors))
		}
		if warnings > 0 {
			counts = append(counts, fmt.Sprintf("%d warnings", warnings))
		}
		fmt.Fprintf(w, "  [%s] %s\n", locale, strings.Join(counts, ", "))

		for i, p := range problems {
			if i == maxProblemsPerLocale {
				fmt.Fprintf(w, "    ... and %d more\n", len(problems)-maxProblemsPerLocale)
				break
			}
			style := errorStyle
			if p.Severity == Warning {
				style = warningStyle
			}
			fmt.Fprintf(w, "    %s\n", style.Render(fmt.Sprintf("- %s: %s", p.Key, p.Message)))
		}
	}

	fmt.Fprintln(w, divider)
	var totals []string
	if n := r.ErrorCount(); n > 0 {
		totals = append(totals, errorStyle.Render(fmt.Sprintf("%d errors", n)))
	}
	if n := r.WarningCount(); n > 0 {
		totals = append(totals, warningStyle.Render(fmt.Sprintf("%d warnings", n)))
	}
	fmt.Fprintf(w, "Total: %s\n", strings.Join(totals, ", "))
}

type jsonReport struct {
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	Issues       []Problem `json:"issues"`
}

// WriteJSON saves the report as a JSON file, creating parent directories as
// needed.
func (r *Report) WriteJSON(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		ErrorCount:   r.ErrorCount(),
		WarningCount: r.WarningCount(),
		Issues:       r.Problems,
	})
}
