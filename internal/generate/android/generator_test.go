// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package android

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/session-foundation/session-shared-scripts/internal/generate"
	"github.com/session-foundation/session-shared-scripts/internal/project"
	"github.com/session-foundation/session-shared-scripts/internal/xliff"
)

func glossaryOf(t *testing.T, terms ...project.Term) *project.Glossary {
	t.Helper()
	g, err := project.NewGlossary(terms...)
	require.NoError(t, err)
	return g
}

func testRun(t *testing.T, dir string) *generate.Run {
	t.Helper()

	info := &project.Info{
		SourceLanguage: project.Language{ID: "en", Locale: "en", TwoLettersCode: "en"},
		TargetLanguages: []project.Language{
			{ID: "sh-HR", Locale: "sh-HR", TwoLettersCode: "sh"},
			{ID: "zh-CN", Locale: "zh-CN", TwoLettersCode: "zh"},
		},
	}

	en := xliff.NewFile("en", "en",
		xliff.Record{Key: "quoted", Value: "it's a &quot;test&quot;"},
		xliff.Record{Key: "greeting", Value: "Hello {name}!"},
		xliff.Record{Key: "message_count", Plural: true, Forms: []xliff.PluralForm{
			{Category: xliff.One, Value: "{count} message from {name}"},
			{Category: xliff.Other, Value: "{count} messages from {name}"},
		}},
	)
	sh := xliff.NewFile("sh-HR", "sh",
		xliff.Record{Key: "greeting", Value: "Zdravo {name}!"},
	)
	zh := xliff.NewFile("zh-CN", "zh",
		xliff.Record{Key: "greeting", Value: "你好 {name}!"},
	)

	return &generate.Run{
		Project: info,
		Glossary: glossaryOf(t,
			project.Term{Key: "app_name", Text: "Session"},
			project.Term{Key: "network_name", Text: "Session Network"},
		),
		Files:           []*xliff.File{en, sh, zh},
		TranslationsDir: filepath.Join(dir, "res"),
		ConstantsPath:   filepath.Join(dir, "NonTranslatableStringConstants.kt"),
	}
}

func fileByPath(files []generate.File, path string) ([]byte, bool) {
	for _, f := range files {
		if f.Path == path {
			return f.Data, true
		}
	}
	return nil, false
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	run := testRun(t, dir)

	files, err := New().Generate(run)
	require.NoError(t, err)

	// Constants, source values, and zh-CN; sh-HR is unsupported on Android.
	require.Len(t, files, 3)
	_, ok := fileByPath(files, filepath.Join(dir, "res", "values-b+sh+HR", "strings.xml"))
	assert.False(t, ok)

	source, ok := fileByPath(files, filepath.Join(dir, "res", "values", "strings.xml"))
	require.True(t, ok)
	xml := string(source)

	assert.Contains(t, xml, `<string name="app_name" translatable="false">Session</string>`)
	assert.Contains(t, xml, `<string name="greeting">Hello {name}!</string>`,
		"plain strings keep their placeholders")
	assert.Contains(t, xml, `<string name="quoted">it\'s a \"test\"</string>`)
	assert.Contains(t, xml, `<plurals name="message_count">`)
	assert.Contains(t, xml, `<item quantity="one">%1$d message from %2$s</item>`)
	assert.Contains(t, xml, `<item quantity="other">%1$d messages from %2$s</item>`)

	target, ok := fileByPath(files, filepath.Join(dir, "res", "values-b+zh+CN", "strings.xml"))
	require.True(t, ok)
	assert.NotContains(t, string(target), "app_name",
		"app_name is only injected into the source locale")
}

func TestGenerate_KotlinConstants(t *testing.T) {
	dir := t.TempDir()
	run := testRun(t, dir)

	files, err := New().Generate(run)
	require.NoError(t, err)

	constants, ok := fileByPath(files, run.ConstantsPath)
	require.True(t, ok)
	kt := string(constants)

	assert.Contains(t, kt, "package org.session.libsession.utilities")
	assert.Contains(t, kt, "object NonTranslatableStringConstants {")
	assert.Contains(t, kt, `const val APP_NAME     = "Session"`)
	assert.Contains(t, kt, `const val NETWORK_NAME = "Session Network"`)
}

func TestGenerate_MissingAppName(t *testing.T) {
	dir := t.TempDir()
	run := testRun(t, dir)
	run.Glossary = glossaryOf(t, project.Term{Key: "network_name", Text: "Session Network"})

	_, err := New().Generate(run)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app_name")
}

func TestGenerate_ConstantCollision(t *testing.T) {
	dir := t.TempDir()
	run := testRun(t, dir)
	run.Glossary = glossaryOf(t,
		project.Term{Key: "app_name", Text: "Session"},
		project.Term{Key: "APP_name", Text: "Other"},
	)

	_, err := New().Generate(run)
	require.Error(t, err)

	var collision *generate.CollisionError
	require.True(t, errors.As(err, &collision))
	assert.Equal(t, "APP_NAME", collision.Identifier)
}

func TestGenerate_Idempotent(t *testing.T) {
	dir := t.TempDir()
	run := testRun(t, dir)

	first, err := New().Generate(run)
	require.NoError(t, err)
	second, err := New().Generate(run)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Data, second[i].Data)
	}
}
