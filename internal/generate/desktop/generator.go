// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

// Package desktop generates the desktop app's localization output: one
// messages.json per locale with ICU plural patterns, plus a TypeScript
// source file declaring the non-translatable constants.
package desktop

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/session-foundation/session-shared-scripts/internal/generate"
	"github.com/session-foundation/session-shared-scripts/internal/project"
	"github.com/session-foundation/session-shared-scripts/internal/xliff"
)

//go:embed constants.ts.tmpl
var tmplFS embed.FS

var constantsTmpl = template.Must(template.ParseFS(tmplFS, "constants.ts.tmpl"))

func init() {
	// Auto-register on import
	generate.Register(New())
}

// localePathMapping customizes the output folder for specific locales.
// Locales not listed here fall back to their two-letter code.
var localePathMapping = map[string]string{
	"en-US":  "en",
	"kmr-TR": "kmr",
	"hy-AM":  "hy-AM",
	"es-419": "es-419",
	"pt-BR":  "pt-BR",
	"pt-PT":  "pt-PT",
	"zh-CN":  "zh-CN",
	"zh-TW":  "zh-TW",
	"sr-CS":  "sr-CS",
	"sr-SP":  "sr-SP",
}

// Generator produces the desktop-shaped output.
type Generator struct{}

// New creates a new desktop generator.
func New() *Generator {
	return &Generator{}
}

// Name returns the generator's identifier.
func (g *Generator) Name() string {
	return "desktop"
}

// Generate builds one messages.json per locale plus the constants file. In
// QA mode only the source locale is emitted.
func (g *Generator) Generate(run *generate.Run) ([]generate.File, error) {
	glossary := run.Glossary.Values()

	languages := []project.Language{run.Project.SourceLanguage}
	if !run.QAMode {
		languages = append(languages, run.Project.TargetLanguages...)
	}

	// Glossary terms containing placeholders are not constants: they join
	// the localized messages under a derived camelCase key so their
	// variables stay replaceable. Derivation must not collide.
	idents := generate.NewIdentifierSet()
	type derivedTerm struct {
		key, ident, pattern string
	}
	var derived []derivedTerm
	for _, term := range run.Glossary.Terms {
		if !generate.ContainsVariable(term.Text) {
			continue
		}
		ident := generate.CamelIdentifier(term.Key)
		if err := idents.Add(term.Key, ident); err != nil {
			return nil, err
		}
		derived = append(derived, derivedTerm{
			key:     term.Key,
			ident:   ident,
			pattern: generate.CleanString(term.Text, false, glossary, nil),
		})
	}

	var files []generate.File
	var exportedLocales []string

	for _, lang := range languages {
		f, ok := run.File(lang.Locale)
		if !ok {
			return nil, fmt.Errorf("no records loaded for locale %s", lang.Locale)
		}

		messages := make(map[string]string, f.Len()+len(derived))
		for _, record := range f.Records {
			messages[record.Key] = icuPattern(record, glossary)
		}
		for _, d := range derived {
			if _, exists := messages[d.ident]; exists {
				return nil, &generate.CollisionError{Identifier: d.ident, Key: d.key, Existing: d.ident}
			}
			messages[d.ident] = d.pattern
		}

		data, err := marshalMessages(messages)
		if err != nil {
			return nil, fmt.Errorf("failed to encode messages for %s: %w", lang.Locale, err)
		}

		outputLocale := outputLocaleFor(lang)
		files = append(files, generate.File{
			Path: filepath.Join(run.TranslationsDir, outputLocale, "messages.json"),
			Data: data,
		})
		exportedLocales = append(exportedLocales, outputLocale)
	}

	constants, err := g.constantsFile(run, exportedLocales)
	if err != nil {
		return nil, err
	}
	files = append(files, generate.File{Path: run.ConstantsPath, Data: constants})

	return files, nil
}

// icuPattern renders a record as the string the desktop app consumes: plural
// records become an ICU plural pattern switching on {count}. Only recognized
// plural categories become pattern parts.
func icuPattern(record xliff.Record, glossary map[string]string) string {
	if !record.Plural {
		return generate.CleanString(record.Value, false, glossary, nil)
	}

	parts := make([]string, 0, len(record.Forms))
	for _, form := range record.Forms {
		if !xliff.KnownCategory(string(form.Category)) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s [%s]",
			form.Category, generate.CleanString(form.Value, false, glossary, nil)))
	}
	return fmt.Sprintf("{count, plural, %s}", strings.Join(parts, " "))
}

// marshalMessages encodes the message map with sorted keys, two-space
// indentation, and no HTML escaping so output stays byte-stable and
// human-diffable.
func marshalMessages(messages map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(messages); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func outputLocaleFor(lang project.Language) string {
	if mapped, ok := localePathMapping[lang.Locale]; ok {
		return mapped
	}
	if mapped, ok := localePathMapping[lang.TwoLettersCode]; ok {
		return mapped
	}
	return lang.TwoLettersCode
}

type constantsData struct {
	Terms      []project.Term
	RTLLocales string
	Locales    []string
}

func (g *Generator) constantsFile(run *generate.Run, exportedLocales []string) ([]byte, error) {
	glossary := run.Glossary.Values()

	data := constantsData{Locales: exportedLocales}
	for _, term := range run.Glossary.Terms {
		// Terms with placeholders were emitted as messages instead.
		if generate.ContainsVariable(term.Text) {
			continue
		}
		data.Terms = append(data.Terms, project.Term{
			Key:  term.Key,
			Text: generate.CleanString(term.Text, false, glossary, nil),
		})
	}

	var rtl []string
	for _, lang := range run.Project.RTLLanguages() {
		rtl = append(rtl, fmt.Sprintf("'%s'", lang.TwoLettersCode))
	}
	sort.Strings(rtl)
	data.RTLLocales = strings.Join(rtl, ", ")

	var buf bytes.Buffer
	if err := constantsTmpl.ExecuteTemplate(&buf, "constants.ts.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}
