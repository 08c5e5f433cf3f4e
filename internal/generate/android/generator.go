// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

// Package android generates the Android app's localization output: one
// strings.xml per locale resource directory plus a Kotlin object declaring
// the non-translatable constants.
package android

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/session-foundation/session-shared-scripts/internal/generate"
	"github.com/session-foundation/session-shared-scripts/internal/project"
	"github.com/session-foundation/session-shared-scripts/internal/xliff"
)

//go:embed constants.kt.tmpl
var tmplFS embed.FS

var constantsTmpl = template.Must(template.ParseFS(tmplFS, "constants.kt.tmpl"))

func init() {
	// Auto-register on import
	generate.Register(New())
}

// appNameKey is the glossary key injected as a non-translatable string
// resource in the source locale.
const appNameKey = "app_name"

// Generator produces the mobile-shaped output.
type Generator struct{}

// New creates a new android generator.
func New() *Generator {
	return &Generator{}
}

// Name returns the generator's identifier.
func (g *Generator) Name() string {
	return "android"
}

// Generate builds one strings.xml per locale plus the Kotlin constants file.
func (g *Generator) Generate(run *generate.Run) ([]generate.File, error) {
	appName, ok := run.Glossary.Lookup(appNameKey)
	if !ok || appName == "" {
		return nil, fmt.Errorf("could not find %s in the glossary", appNameKey)
	}

	constants, err := g.constantsFile(run)
	if err != nil {
		return nil, err
	}
	files := []generate.File{{Path: run.ConstantsPath, Data: constants}}

	glossary := run.Glossary.Values()
	sourceLocale := run.Project.SourceLanguage.Locale

	languages := []project.Language{run.Project.SourceLanguage}
	if !run.QAMode {
		languages = append(languages, run.Project.TargetLanguages...)
	}

	for _, lang := range languages {
		// See https://en.wikipedia.org/wiki/Language_secessionism#In_Serbo-Croatian
		if lang.Locale == "sh-HR" {
			continue
		}

		f, ok := run.File(lang.Locale)
		if !ok {
			return nil, fmt.Errorf("no records loaded for locale %s", lang.Locale)
		}

		isSource := lang.Locale == sourceLocale
		name := appName
		if !isSource {
			name = ""
		}

		files = append(files, generate.File{
			Path: filepath.Join(run.TranslationsDir, resourceDir(lang.Locale, isSource), "strings.xml"),
			Data: []byte(resourceXML(f, name, glossary)),
		})
	}

	return files, nil
}

// resourceDir maps a locale to its Android resource directory. Android
// resolves BCP 47 locales through the values-b+ scheme.
func resourceDir(locale string, isSource bool) string {
	if isSource {
		return "values"
	}
	return "values-b+" + strings.ReplaceAll(locale, "-", "+")
}

// resourceXML renders one locale's strings.xml. appName is injected as a
// non-translatable resource when non-empty (source locale only). Records are
// emitted in key order so re-runs are byte-identical.
func resourceXML(f *xliff.File, appName string, glossary map[string]string) string {
	records := make([]xliff.Record, len(f.Records))
	copy(records, f.Records)
	sort.Slice(records, func(a, b int) bool { return records[a].Key < records[b].Key })

	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	sb.WriteString("<resources>\n")

	if appName != "" {
		fmt.Fprintf(&sb, "    <string name=\"app_name\" translatable=\"false\">%s</string>\n", appName)
	}

	for _, record := range records {
		if record.Plural {
			fmt.Fprintf(&sb, "    <plurals name=\"%s\">\n", record.Key)
			for _, form := range record.Forms {
				value := generate.CleanString(generate.ConvertPlaceholders(form.Value), true, glossary, nil)
				fmt.Fprintf(&sb, "        <item quantity=\"%s\">%s</item>\n", form.Category, value)
			}
			sb.WriteString("    </plurals>\n")
			continue
		}

		// Plain strings keep their {variable} placeholders as-is.
		fmt.Fprintf(&sb, "    <string name=\"%s\">%s</string>\n",
			record.Key, generate.CleanString(record.Value, true, glossary, nil))
	}

	sb.WriteString("</resources>")
	return sb.String()
}

type constant struct {
	Name  string
	Value string
}

type constantsData struct {
	Constants []constant
}

// constantsFile renders the Kotlin constants object. Keys are upper-cased
// and padded to align the declarations; derivation must stay injective.
func (g *Generator) constantsFile(run *generate.Run) ([]byte, error) {
	idents := generate.NewIdentifierSet()

	maxLen := 0
	for _, term := range run.Glossary.Terms {
		if len(term.Key) > maxLen {
			maxLen = len(term.Key)
		}
	}

	data := constantsData{}
	for _, term := range run.Glossary.Terms {
		name := generate.ConstIdentifier(term.Key)
		if err := idents.Add(term.Key, name); err != nil {
			return nil, err
		}
		data.Constants = append(data.Constants, constant{
			Name:  fmt.Sprintf("%-*s", maxLen, name),
			Value: term.Text,
		})
	}

	var buf bytes.Buffer
	if err := constantsTmpl.ExecuteTemplate(&buf, "constants.kt.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}
