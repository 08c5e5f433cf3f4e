// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(projectID, glossaryID, conceptID, translationsDir *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Crowdin project ID").
				Placeholder("123456").
				Validate(requiredValidator("project ID")).
				Value(projectID),
			huh.NewInput().
				Title("Glossary ID (optional)").
				Value(glossaryID),
			huh.NewInput().
				Title("Glossary concept ID (optional)").
				Value(conceptID),
			huh.NewInput().
				Title("Translations directory").
				Placeholder("_translations").
				Value(translationsDir),
		),
	).WithTheme(Theme()).Run()
}
