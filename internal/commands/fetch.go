// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/session-foundation/session-shared-scripts/internal/crowdin"
	"github.com/session-foundation/session-shared-scripts/internal/project"
	"github.com/session-foundation/session-shared-scripts/internal/prompts"
)

// maxFetchWorkers caps concurrent translation exports so the API rate
// limits are not tripped.
const maxFetchWorkers = 20

type fetchOptions struct {
	projectID        string
	token            string
	output           string
	glossaryID       string
	conceptID        string
	apiBase          string
	skipUntranslated bool
	allowUnapproved  bool
	maxWorkers       int
}

func newFetchCmd(getenv func(string) string) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download translations and project metadata from Crowdin",
		Long: `Download one XLIFF export per project language into the output
directory, along with the project metadata and non-translatable strings
manifests the generate step consumes.

The API token is read from --token or the CROWDIN_API_TOKEN environment
variable.`,
		Example: `  # Using l10n.yaml for project settings
  CROWDIN_API_TOKEN=... l10n fetch

  # Fully flag-driven
  l10n fetch --project-id 123456 --token ... --output _translations`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.token == "" {
				opts.token = getenv("CROWDIN_API_TOKEN")
			}
			return runFetch(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.projectID, "project-id", "p", "", "Crowdin project ID (defaults to l10n.yaml)")
	cmd.Flags().StringVar(&opts.token, "token", "", "Crowdin API token (defaults to CROWDIN_API_TOKEN)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (defaults to l10n.yaml translations_dir)")
	cmd.Flags().StringVar(&opts.glossaryID, "glossary-id", "", "Glossary ID for non-translatable strings (defaults to l10n.yaml)")
	cmd.Flags().StringVar(&opts.conceptID, "concept-id", "", "Glossary concept ID to filter terms by (defaults to l10n.yaml)")
	cmd.Flags().StringVar(&opts.apiBase, "api-base", "", "Crowdin API base URL (defaults to l10n.yaml api_base)")
	cmd.Flags().BoolVar(&opts.skipUntranslated, "skip-untranslated", false, "Skip untranslated strings in target exports")
	cmd.Flags().BoolVar(&opts.allowUnapproved, "allow-unapproved", false, "Include unapproved translations in target exports")
	cmd.Flags().IntVar(&opts.maxWorkers, "max-workers", maxFetchWorkers, "Maximum parallel downloads")

	return cmd
}

func runFetch(cmd *cobra.Command, opts *fetchOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.projectID == "" {
		opts.projectID = cfg.ProjectID
	}
	if opts.glossaryID == "" {
		opts.glossaryID = cfg.GlossaryID
	}
	if opts.conceptID == "" {
		opts.conceptID = cfg.ConceptID
	}
	if opts.output == "" {
		opts.output = cfg.TranslationsDir
	}
	if opts.output == "" {
		opts.output = "_translations"
	}

	if opts.projectID == "" {
		return errors.New("no project ID; pass --project-id or run l10n init")
	}
	if opts.token == "" {
		return errors.New("no API token; pass --token or set CROWDIN_API_TOKEN")
	}
	workers := opts.maxWorkers
	if workers < 1 || workers > maxFetchWorkers {
		workers = maxFetchWorkers
	}

	if err := os.MkdirAll(opts.output, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	baseURL := opts.apiBase
	if baseURL == "" {
		baseURL = cfg.APIBase
	}
	if baseURL == "" {
		baseURL = crowdin.DefaultBaseURL
	}
	client := crowdin.New(baseURL, opts.token)
	ctx := cmd.Context()

	info, raw, err := client.ProjectDetails(ctx, opts.projectID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(opts.output, project.InfoFileName), raw, 0o600); err != nil {
		return fmt.Errorf("failed to write project info: %w", err)
	}

	if opts.glossaryID != "" {
		terms, err := client.GlossaryTerms(ctx, opts.glossaryID, opts.conceptID)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(opts.output, project.GlossaryFileName), terms, 0o600); err != nil {
			return fmt.Errorf("failed to write glossary: %w", err)
		}
	}

	languages := info.AllLanguages()
	fmt.Printf("Fetching %d translation export(s) for project %s...\n", len(languages), opts.projectID)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, lang := range languages {
		lang := lang
		g.Go(func() error {
			// The source export always carries every string so the
			// validator has a complete baseline.
			skip := opts.skipUntranslated
			approvedOnly := !opts.allowUnapproved
			if lang.ID == info.SourceLanguage.ID {
				skip = false
				approvedOnly = false
			}

			url, err := client.ExportTranslation(gctx, opts.projectID, lang.ID, skip, approvedOnly)
			if err != nil {
				return fmt.Errorf("failed to export %s: %w", lang.Locale, err)
			}
			path := filepath.Join(opts.output, lang.Locale+".xliff")
			if err := client.DownloadFile(gctx, url, path); err != nil {
				return fmt.Errorf("failed to download %s: %w", lang.Locale, err)
			}
			fmt.Printf("  %s\n", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Project", Value: opts.projectID},
		{Label: "Languages", Value: strconv.Itoa(len(languages))},
		{Label: "Output", Value: opts.output},
	}, "Fetch completed")
	return nil
}
