// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunGenerateForm prompts for any generate inputs not supplied via flags.
// Fields already holding a value keep it as the form default.
func RunGenerateForm(platform, output *string, platforms []string) error {
	options := make([]huh.Option[string], len(platforms))
	for i, p := range platforms {
		options[i] = huh.NewOption(p, p)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Target platform").
				Options(options...).
				Value(platform),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Validate(requiredValidator("output directory")).
				Value(output),
		),
	).WithTheme(Theme()).Run()
}
