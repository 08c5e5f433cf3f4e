// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/session-foundation/session-shared-scripts/internal/generate"
	"github.com/session-foundation/session-shared-scripts/internal/project"
	"github.com/session-foundation/session-shared-scripts/internal/prompts"
	"github.com/session-foundation/session-shared-scripts/internal/validate"
	"github.com/session-foundation/session-shared-scripts/internal/xliff"

	// Import generators to auto-register.
	_ "github.com/session-foundation/session-shared-scripts/internal/generate/android"
	_ "github.com/session-foundation/session-shared-scripts/internal/generate/desktop"
)

type generateOptions struct {
	platform         string
	input            string
	output           string
	constants        string
	qa               bool
	skipUntranslated bool
	skipValidation   bool
	errorOnProblems  bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate platform translation files from fetched XLIFF exports",
		Long: fmt.Sprintf(`Generate platform translation files and non-translatable string
constants from the fetched XLIFF exports. Translations are validated
before anything is written unless --skip-validation is set.

Available platforms: %s`, strings.Join(generate.Available(), ", ")),
		Example: `  # Interactive mode
  l10n generate

  # Desktop messages.json files plus TypeScript constants
  l10n generate --platform desktop --output ts/localization

  # Android resources, failing the build on validation errors
  l10n generate --platform android --output app/src/main/res --error-on-problems`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.platform, "platform", "", fmt.Sprintf("Target platform (%s)", strings.Join(generate.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Directory holding fetched translations (defaults to l10n.yaml translations_dir)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory for translation files")
	cmd.Flags().StringVar(&opts.constants, "constants", "", "Output path for the non-translatable constants file")
	cmd.Flags().BoolVar(&opts.qa, "qa", false, "QA mode: generate the source locale only")
	cmd.Flags().BoolVar(&opts.skipUntranslated, "skip-untranslated", false, "Drop untranslated strings instead of falling back to source text")
	cmd.Flags().BoolVar(&opts.skipValidation, "skip-validation", false, "Skip translation validation")
	cmd.Flags().BoolVar(&opts.errorOnProblems, "error-on-problems", false, "Exit non-zero if validation finds error-severity problems")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	// Prompt for anything flags didn't pin down.
	if opts.platform == "" || opts.output == "" {
		if err := prompts.RunGenerateForm(&opts.platform, &opts.output, generate.Available()); err != nil {
			return err
		}
	}

	gen, err := generate.Get(opts.platform)
	if err != nil {
		return fmt.Errorf("%w. Available platforms: %s", err, strings.Join(generate.Available(), ", "))
	}
	if opts.constants == "" {
		opts.constants = filepath.Join(opts.output, defaultConstantsName(opts.platform))
	}

	dir, err := resolveTranslationsDir(opts.input)
	if err != nil {
		return err
	}

	info, err := project.LoadInfo(dir)
	if err != nil {
		return err
	}
	glossary, err := project.LoadGlossary(dir)
	if err != nil {
		return err
	}
	files, warnings, err := xliff.LoadAll(dir, info, xliff.Options{SkipUntranslated: opts.skipUntranslated})
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w)
	}

	run := &generate.Run{
		Project:         info,
		Glossary:        glossary,
		Files:           files,
		TranslationsDir: opts.output,
		ConstantsPath:   opts.constants,
		QAMode:          opts.qa,
	}

	if !opts.skipValidation {
		report := validate.Validate(run.Base(), run.Files)
		report.PrintSummary(os.Stdout)
		if opts.errorOnProblems && report.HasErrors() {
			return fmt.Errorf("validation failed with %d error(s)", report.ErrorCount())
		}
	}

	outputs, err := gen.Generate(run)
	if err != nil {
		return err
	}
	if err := generate.Emit(outputs); err != nil {
		return err
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Platform", Value: gen.Name()},
		{Label: "Files", Value: strconv.Itoa(len(outputs))},
		{Label: "Output", Value: opts.output},
	}, "Generation completed")
	return nil
}

func defaultConstantsName(platform string) string {
	if platform == "android" {
		return "NonTranslatableStringConstants.kt"
	}
	return "constants.ts"
}
