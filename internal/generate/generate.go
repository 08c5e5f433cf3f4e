// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

// Package generate maps validated translation record sets into per-platform
// output files. Each platform is one Generator strategy; adding a platform
// means adding one implementation against this interface.
package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/session-foundation/session-shared-scripts/internal/project"
	"github.com/session-foundation/session-shared-scripts/internal/xliff"
)

// Run is the context for one generation pass: the loaded record sets plus
// the caller's flags and output locations. Runs are independent; multiple
// platform passes over the same Run data never share mutable state.
type Run struct {
	Project  *project.Info
	Glossary *project.Glossary

	// Files holds one record set per locale, base locale first.
	Files []*xliff.File

	// TranslationsDir is the root for per-locale resource output.
	TranslationsDir string
	// ConstantsPath is where the generated constants source file goes.
	ConstantsPath string

	// QAMode restricts output to the source locale for QA-facing exports.
	QAMode bool
}

// Base returns the base-locale record set.
func (r *Run) Base() *xliff.File {
	return r.Files[0]
}

// File returns the record set for a locale.
func (r *Run) File(locale string) (*xliff.File, bool) {
	for _, f := range r.Files {
		if f.Locale == locale {
			return f, true
		}
	}
	return nil, false
}

// File is one generated output file.
type File struct {
	Path string
	Data []byte
}

// Generator defines the interface all platform generators implement.
type Generator interface {
	// Name returns the generator's identifier (e.g. "desktop", "android").
	Name() string

	// Generate transforms the run's record sets into output files. It never
	// touches the file system; Emit does the writing.
	Generate(run *Run) ([]File, error)
}

var generators = make(map[string]Generator)

// Register adds a generator to the registry.
func Register(g Generator) {
	generators[g.Name()] = g
}

// Get retrieves a generator by name.
func Get(name string) (Generator, error) {
	g, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown platform: %s", name)
	}
	return g, nil
}

// Available returns all registered generator names, sorted.
func Available() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Emit writes generated files to disk, creating directories as needed.
// Re-running with unchanged input produces byte-identical files.
func Emit(files []File) error {
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.Path), 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(f.Path, f.Data, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
	}
	return nil
}
