// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

// Package xliff parses XLIFF 1.2 translation exports into per-locale record
// sets. Plural records are recognized structurally: a group with
// restype="x-gettext-plurals" whose trans-units carry an x-plural-form
// context.
package xliff

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/session-foundation/session-shared-scripts/internal/project"
)

const pluralGroupRestype = "x-gettext-plurals"

type document struct {
	XMLName xml.Name `xml:"xliff"`
	File    *docFile `xml:"file"`
}

type docFile struct {
	TargetLanguage string `xml:"target-language,attr"`
	Body           body   `xml:"body"`
}

type body struct {
	Groups []group     `xml:"group"`
	Units  []transUnit `xml:"trans-unit"`
}

type group struct {
	Restype string      `xml:"restype,attr"`
	Groups  []group     `xml:"group"`
	Units   []transUnit `xml:"trans-unit"`
}

type transUnit struct {
	ID       string        `xml:"id,attr"`
	Resname  string        `xml:"resname,attr"`
	Source   string        `xml:"source"`
	Target   string        `xml:"target"`
	Contexts []contextElem `xml:"context-group>context"`
}

type contextElem struct {
	Type  string `xml:"context-type,attr"`
	Value string `xml:",chardata"`
}

func (u transUnit) key() string {
	if u.Resname != "" {
		return u.Resname
	}
	return u.ID
}

// pluralForm returns the plural category named by the unit's x-plural-form
// context (e.g. "plural:one" -> "one"), or "" if the unit has none.
func (u transUnit) pluralForm() string {
	for _, c := range u.Contexts {
		if c.Type == "x-plural-form" {
			parts := strings.Split(c.Value, ":")
			return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
		}
	}
	return ""
}

// Options controls loader behavior.
type Options struct {
	// SkipUntranslated drops records whose target text is missing or empty
	// instead of falling back to the source text.
	SkipUntranslated bool
}

// Parse reads a single XLIFF export for the given locale. Every plural
// category the export names is retained; output platforms filter to the
// categories they support.
//
// Returned warnings cover source-text fallbacks; they never fail the parse.
func Parse(r io.Reader, locale string, opts Options) (*File, []string, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("invalid XLIFF structure: %w", err)
	}
	if doc.File == nil {
		return nil, nil, fmt.Errorf("invalid XLIFF structure: missing file element")
	}
	if doc.File.TargetLanguage == "" {
		return nil, nil, fmt.Errorf("missing target-language attribute")
	}

	f := &File{Locale: locale, TargetLanguage: doc.File.TargetLanguage}
	var warnings []string

	// Plural groups first so their trans-units are never mistaken for plain
	// records.
	var pluralGroups []group
	var allUnits []transUnit
	collect(doc.File.Body.Groups, &pluralGroups, &allUnits)
	allUnits = append(allUnits, doc.File.Body.Units...)

	for _, g := range pluralGroups {
		record := Record{Plural: true}
		for _, unit := range g.Units {
			if record.Key == "" {
				record.Key = unit.key()
			}
			form := unit.pluralForm()
			if form == "" {
				continue
			}

			text := unit.Target
			if text == "" {
				if opts.SkipUntranslated || unit.Source == "" {
					continue
				}
				text = unit.Source
				warnings = append(warnings, fmt.Sprintf(
					"using source text for plural form %q of %q in %q as target is missing or empty",
					form, record.Key, f.TargetLanguage))
			}

			record.Forms = append(record.Forms, PluralForm{Category: PluralCategory(form), Value: text})
		}
		if record.Key != "" && len(record.Forms) > 0 {
			f.add(record)
		}
	}

	for _, unit := range allUnits {
		key := unit.key()
		if key == "" || unit.pluralForm() != "" {
			continue
		}

		text := unit.Target
		if text == "" {
			if opts.SkipUntranslated || unit.Source == "" {
				continue
			}
			text = unit.Source
			warnings = append(warnings, fmt.Sprintf(
				"using source text for %q in %q as target is missing or empty",
				key, f.TargetLanguage))
		}
		f.add(Record{Key: key, Value: text})
	}

	return f, warnings, nil
}

// collect walks nested groups, separating plural groups from the trans-units
// of ordinary groups.
func collect(groups []group, plurals *[]group, units *[]transUnit) {
	for _, g := range groups {
		if g.Restype == pluralGroupRestype {
			*plurals = append(*plurals, g)
			continue
		}
		*units = append(*units, g.Units...)
		collect(g.Groups, plurals, units)
	}
}

// ParseFile parses the export file at path.
func ParseFile(path, locale string, opts Options) (*File, []string, error) {
	r, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, nil, fmt.Errorf("could not find %q in raw translations directory", path)
	}
	defer r.Close() //nolint:errcheck

	return Parse(r, locale, opts)
}

// LoadAll parses one export file per project language from dir, source
// language first then targets in locale order. A missing or malformed file
// for any locale fails the whole load.
func LoadAll(dir string, info *project.Info, opts Options) ([]*File, []string, error) {
	var files []*File
	var warnings []string

	for _, lang := range info.AllLanguages() {
		path := filepath.Join(dir, lang.Locale+".xliff")
		f, w, err := ParseFile(path, lang.Locale, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("error processing locale %s: %w", lang.Locale, err)
		}
		files = append(files, f)
		warnings = append(warnings, w...)
	}

	return files, warnings, nil
}
