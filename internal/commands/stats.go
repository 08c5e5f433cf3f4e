// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/session-foundation/session-shared-scripts/internal/prompts"
	"github.com/session-foundation/session-shared-scripts/internal/releases"
)

type statsOptions struct {
	repo    string
	output  string
	apiBase string
}

func newStatsCmd() *cobra.Command {
	opts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Export release download statistics as CSV",
		Long: `Fetch every release of a GitHub repository and write per-asset
download counts to a CSV file.`,
		Example: `  l10n stats --repo session-foundation/session-desktop --output releases.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.repo, "repo", "r", "", "Repository as owner/name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "releases.csv", "Output CSV path")
	cmd.Flags().StringVar(&opts.apiBase, "api-base", releases.DefaultBaseURL, "GitHub API base URL")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func runStats(cmd *cobra.Command, opts *statsOptions) error {
	owner, name, ok := strings.Cut(opts.repo, "/")
	if !ok || owner == "" || name == "" {
		return fmt.Errorf("invalid repository %q; expected owner/name", opts.repo)
	}

	client := releases.NewClient(opts.apiBase)
	list, err := client.List(cmd.Context(), owner, name)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.output) //nolint:gosec // path is provided by caller
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.output, err)
	}
	defer f.Close() //nolint:errcheck

	if err := releases.WriteCSV(f, list); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Repository", Value: opts.repo},
		{Label: "Releases", Value: strconv.Itoa(len(list))},
		{Label: "Output", Value: opts.output},
	}, "")
	return nil
}
