// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

// Package main is the entry point for the l10n CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/session-foundation/session-shared-scripts/cmd/internal"
)

func main() {
	if err := internal.Run(context.Background(), os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
