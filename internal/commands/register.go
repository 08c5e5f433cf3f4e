// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

// Package commands contains all CLI command definitions.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/session-foundation/session-shared-scripts/internal/config"
)

// NewRootCmd creates and returns the root command for the CLI.
// getenv is injected so tests can control environment lookups.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "l10n",
		Short: "Manage Session translation assets",
		Long: `l10n drives the Session localization pipeline: it fetches XLIFF
exports and project metadata from Crowdin, validates translated strings
against the source locale, and renders per-platform translation files.`,
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newFetchCmd(getenv))
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig reads l10n.yaml from the working directory. A missing file is
// not an error; flags then carry the full configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.DefaultFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return &config.Config{Version: config.CurrentConfigVersion}, nil
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
