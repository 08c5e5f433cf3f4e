// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package generate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanString(t *testing.T) {
	glossary := map[string]string{"app_name": "Session"}

	tests := []struct {
		name    string
		text    string
		android bool
		want    string
	}{
		{"html unescape", "Tom &amp; Jerry", false, "Tom & Jerry"},
		{"strips whitespace", "  hello  ", false, "hello"},
		{"glossary substitution", "Welcome to {app_name}!", false, "Welcome to Session!"},
		{"android apostrophe", "it's here", true, `it\'s here`},
		{"android quotes", `say &quot;hi&quot;`, true, `say \"hi\"`},
		{"android bold tags", "&lt;b&gt;hi&lt;/b&gt;", true, "<b>hi</b>"},
		{"android line break", "line one<br/>line two", true, `line one\nline two`},
		{"android ampersand", "Tom &amp; Jerry", true, "Tom &amp;amp; Jerry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanString(tt.text, tt.android, glossary, nil))
		})
	}
}

func TestCleanString_ExtraReplacements(t *testing.T) {
	got := CleanString("You have {count} messages", false, nil, map[string]string{"{count}": "%lld"})
	assert.Equal(t, "You have %lld messages", got)
}

func TestConvertPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no placeholders", "plain text", "plain text"},
		{"numeric variable", "{count} messages", "%1$d messages"},
		{"string variable", "hello {name}", "hello %1$s"},
		{"mixed", "{name} sent {count} messages", "%1$s sent %2$d messages"},
		{"repeated variable advances the index", "{name} and {name}", "%1$s and %2$s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertPlaceholders(tt.text))
		})
	}
}

func TestContainsVariable(t *testing.T) {
	assert.True(t, ContainsVariable("hi {name}"))
	assert.False(t, ContainsVariable("hi name"))
	assert.False(t, ContainsVariable("hi {}"))
}

func TestCamelIdentifier(t *testing.T) {
	assert.Equal(t, "appName", CamelIdentifier("app_name"))
	assert.Equal(t, "emojiCopied", CamelIdentifier("emoji_copied"))
	// Deterministic: same key, same identifier.
	assert.Equal(t, CamelIdentifier("app_name"), CamelIdentifier("app_name"))
}

func TestConstIdentifier(t *testing.T) {
	assert.Equal(t, "APP_NAME", ConstIdentifier("app_name"))
}

func TestIdentifierSet_Collision(t *testing.T) {
	s := NewIdentifierSet()
	require.NoError(t, s.Add("app_name", "appName"))
	require.NoError(t, s.Add("app_name", "appName"), "same key is idempotent")

	err := s.Add("app__name", "appName")
	require.Error(t, err)

	var collision *CollisionError
	require.True(t, errors.As(err, &collision))
	assert.Equal(t, "appName", collision.Identifier)
	assert.Equal(t, "app__name", collision.Key)
	assert.Equal(t, "app_name", collision.Existing)
}

func TestRegistry(t *testing.T) {
	_, err := Get("no-such-platform")
	assert.Error(t, err)
}

func TestEmit(t *testing.T) {
	dir := t.TempDir()
	files := []File{
		{Path: filepath.Join(dir, "en", "messages.json"), Data: []byte(`{"a":"b"}`)},
		{Path: filepath.Join(dir, "constants.ts"), Data: []byte("export {}\n")},
	}

	require.NoError(t, Emit(files))

	got, err := os.ReadFile(filepath.Join(dir, "en", "messages.json")) //nolint:gosec // test file path
	require.NoError(t, err)
	assert.Equal(t, `{"a":"b"}`, string(got))

	// Emitting again overwrites deterministically.
	require.NoError(t, Emit(files))
	again, err := os.ReadFile(filepath.Join(dir, "en", "messages.json")) //nolint:gosec // test file path
	require.NoError(t, err)
	assert.Equal(t, got, again)
}
