// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

// Package project loads the translation project manifests that accompany a
// directory of raw translation exports: the project info file describing the
// source and target languages, and the glossary of non-translatable strings.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Manifest file names written by the fetch step alongside the XLIFF exports.
const (
	InfoFileName     = "_project_info.json"
	GlossaryFileName = "_non_translatable_strings.json"
)

// Language describes one project language as reported by the translation
// platform.
type Language struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Locale         string `json:"locale"`
	TwoLettersCode string `json:"twoLettersCode"`
	TextDirection  string `json:"textDirection"`
}

// Info is the parsed project info manifest. TargetLanguages is sorted by
// locale so that every downstream pass sees languages in a stable order.
type Info struct {
	SourceLanguage  Language
	TargetLanguages []Language
}

// AllLanguages returns the source language followed by the sorted target
// languages.
func (i *Info) AllLanguages() []Language {
	all := make([]Language, 0, len(i.TargetLanguages)+1)
	all = append(all, i.SourceLanguage)
	all = append(all, i.TargetLanguages...)
	return all
}

// RTLLanguages returns the target languages written right-to-left.
func (i *Info) RTLLanguages() []Language {
	var rtl []Language
	for _, lang := range i.TargetLanguages {
		if lang.TextDirection == "rtl" {
			rtl = append(rtl, lang)
		}
	}
	return rtl
}

type infoFile struct {
	Data struct {
		SourceLanguage  Language   `json:"sourceLanguage"`
		TargetLanguages []Language `json:"targetLanguages"`
	} `json:"data"`
}

// ParseInfo parses raw project info JSON as returned by the translation
// platform API and written to the info manifest.
func ParseInfo(raw []byte) (*Info, error) {
	var f infoFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("could not parse project info: %w", err)
	}
	if f.Data.SourceLanguage.Locale == "" {
		return nil, errors.New("project info is missing a source language")
	}

	info := &Info{
		SourceLanguage:  f.Data.SourceLanguage,
		TargetLanguages: f.Data.TargetLanguages,
	}
	sort.Slice(info.TargetLanguages, func(a, b int) bool {
		return info.TargetLanguages[a].Locale < info.TargetLanguages[b].Locale
	})
	return info, nil
}

// LoadInfo reads the project info manifest from dir.
func LoadInfo(dir string) (*Info, error) {
	path := filepath.Join(dir, InfoFileName)
	raw, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, fmt.Errorf("could not read project info %q: %w", path, err)
	}

	info, err := ParseInfo(raw)
	if err != nil {
		return nil, fmt.Errorf("project info %q: %w", path, err)
	}
	return info, nil
}

// Term is a single non-translatable string: a stable key (the glossary note)
// and the literal value that must appear verbatim in every locale.
type Term struct {
	Key  string
	Text string
}

// Glossary is the ordered set of non-translatable strings. Order follows the
// manifest file so generated output is stable across runs.
type Glossary struct {
	Terms []Term

	byKey map[string]string
}

// NewGlossary builds a glossary from terms in order, rejecting duplicate
// keys.
func NewGlossary(terms ...Term) (*Glossary, error) {
	g := &Glossary{byKey: make(map[string]string, len(terms))}
	for _, term := range terms {
		if _, seen := g.byKey[term.Key]; seen {
			return nil, fmt.Errorf("glossary has duplicate key %q", term.Key)
		}
		g.Terms = append(g.Terms, term)
		g.byKey[term.Key] = term.Text
	}
	return g, nil
}

// Lookup returns the literal value for a glossary key.
func (g *Glossary) Lookup(key string) (string, bool) {
	text, ok := g.byKey[key]
	return text, ok
}

// Values returns the key to value mapping for substitution passes.
func (g *Glossary) Values() map[string]string {
	return g.byKey
}

// Len returns the number of glossary terms.
func (g *Glossary) Len() int {
	return len(g.Terms)
}

type glossaryFile struct {
	Data []struct {
		Data struct {
			Note string `json:"note"`
			Text string `json:"text"`
		} `json:"data"`
	} `json:"data"`
}

// LoadGlossary reads the non-translatable strings manifest from dir.
func LoadGlossary(dir string) (*Glossary, error) {
	path := filepath.Join(dir, GlossaryFileName)
	raw, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, fmt.Errorf("could not read glossary %q: %w", path, err)
	}

	var f glossaryFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("could not parse glossary %q: %w", path, err)
	}

	terms := make([]Term, 0, len(f.Data))
	for _, entry := range f.Data {
		terms = append(terms, Term{Key: entry.Data.Note, Text: entry.Data.Text})
	}

	g, err := NewGlossary(terms...)
	if err != nil {
		return nil, fmt.Errorf("glossary %q: %w", path, err)
	}
	return g, nil
}
