// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/session-foundation/session-shared-scripts/internal/project"
	"github.com/session-foundation/session-shared-scripts/internal/validate"
	"github.com/session-foundation/session-shared-scripts/internal/xliff"
)

type validateOptions struct {
	input           string
	report          string
	errorOnProblems bool
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate fetched translations against the source locale",
		Long: `Load every fetched XLIFF file and check translated strings for
malformed variables, disallowed or malformed tags, variable and tag
mismatches against the source locale, and keys missing from the source.`,
		Example: `  # Validate the default translations directory
  l10n validate

  # Fail the build on errors and keep a machine-readable report
  l10n validate --error-on-problems --report problems.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Directory holding fetched translations (defaults to l10n.yaml translations_dir)")
	cmd.Flags().StringVar(&opts.report, "report", "", "Write a JSON problem report to this path")
	cmd.Flags().BoolVar(&opts.errorOnProblems, "error-on-problems", false, "Exit non-zero if any error-severity problem is found")

	return cmd
}

func runValidate(opts *validateOptions) error {
	report, err := runValidation(opts.input, false)
	if err != nil {
		return err
	}

	if opts.report != "" {
		if err := report.WriteJSON(opts.report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if opts.errorOnProblems && report.HasErrors() {
		return fmt.Errorf("validation failed with %d error(s)", report.ErrorCount())
	}
	return nil
}

// runValidation loads the translations directory, validates it and prints
// the styled summary.
func runValidation(input string, skipUntranslated bool) (*validate.Report, error) {
	dir, err := resolveTranslationsDir(input)
	if err != nil {
		return nil, err
	}

	info, err := project.LoadInfo(dir)
	if err != nil {
		return nil, err
	}

	files, warnings, err := xliff.LoadAll(dir, info, xliff.Options{SkipUntranslated: skipUntranslated})
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w)
	}

	report := validate.Validate(files[0], files)
	report.PrintSummary(os.Stdout)
	return report, nil
}

func resolveTranslationsDir(input string) (string, error) {
	if input != "" {
		return input, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.TranslationsDir != "" {
		return cfg.TranslationsDir, nil
	}
	return "_translations", nil
}
