// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/session-foundation/session-shared-scripts/internal/config"
	"github.com/session-foundation/session-shared-scripts/internal/prompts"
)

type initOptions struct {
	projectID       string
	glossaryID      string
	conceptID       string
	translationsDir string
	nonInteractive  bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize an l10n project",
		Long:  `Initialize an l10n project with an l10n.yaml configuration file.`,
		Example: `  # Interactive mode
  l10n init

  # Non-interactive
  l10n init --project-id 123456 --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.projectID, "project-id", "p", "", "Crowdin project ID")
	cmd.Flags().StringVar(&opts.glossaryID, "glossary-id", "", "Crowdin glossary ID holding non-translatable strings")
	cmd.Flags().StringVar(&opts.conceptID, "concept-id", "", "Glossary concept ID to filter terms by")
	cmd.Flags().StringVarP(&opts.translationsDir, "translations-dir", "d", "_translations", "Directory holding fetched translation files")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts (requires --project-id)")

	return cmd
}

func runInit(opts *initOptions) error {
	if _, err := os.Stat(config.DefaultFileName); err == nil {
		return errors.New("l10n.yaml already exists; project already initialized")
	}

	if opts.nonInteractive {
		if opts.projectID == "" {
			return errors.New("non-interactive mode requires --project-id")
		}
	} else {
		if err := prompts.RunInitForm(
			&opts.projectID,
			&opts.glossaryID,
			&opts.conceptID,
			&opts.translationsDir,
		); err != nil {
			return err
		}
	}

	cfg := config.Config{
		Version:         config.CurrentConfigVersion,
		ProjectID:       opts.projectID,
		GlossaryID:      opts.glossaryID,
		ConceptID:       opts.conceptID,
		TranslationsDir: opts.translationsDir,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(config.DefaultFileName); err != nil {
		return fmt.Errorf("failed to write l10n.yaml: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Project", Value: opts.projectID},
		{Label: "Translations", Value: opts.translationsDir},
	}, "Initialization completed")
	return nil
}
