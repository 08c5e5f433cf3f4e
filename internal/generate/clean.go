// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package generate

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Variables that hold numbers and convert to %d placeholders on Android.
var numericVariables = map[string]bool{
	"count":       true,
	"found_count": true,
	"total_count": true,
}

var placeholderPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ContainsVariable reports whether text carries a {variable} placeholder.
func ContainsVariable(text string) bool {
	return placeholderPattern.MatchString(text)
}

// CleanString normalizes a raw translation value for output. Android output
// needs its own escaping; everything else just unescapes the HTML entities
// the export carries. Glossary keys appearing as {key} placeholders are
// substituted with their literal values, then any extra replacements are
// applied.
func CleanString(text string, android bool, glossary, extra map[string]string) string {
	if android {
		// Escapes the platform requires; anything shared across platforms
		// belongs in the translation source, not here.
		text = strings.ReplaceAll(text, "'", `\'`)
		text = strings.ReplaceAll(text, "&quot;", `"`)
		text = strings.ReplaceAll(text, `"`, `\"`)
		text = strings.ReplaceAll(text, "&lt;b&gt;", "<b>")
		text = strings.ReplaceAll(text, "&lt;/b&gt;", "</b>")
		text = strings.ReplaceAll(text, "&lt;/br&gt;", `\n`)
		text = strings.ReplaceAll(text, "<br/>", `\n`)
		// Assume any remaining ampersands are desired.
		text = strings.ReplaceAll(text, "&", "&amp;")
	} else {
		text = html.UnescapeString(text)
	}

	text = strings.TrimSpace(text)

	for key, value := range glossary {
		text = strings.ReplaceAll(text, "{"+key+"}", value)
	}
	for key, value := range extra {
		text = strings.ReplaceAll(text, key, value)
	}
	return text
}

// ConvertPlaceholders rewrites {variable} placeholders as positional Android
// format specifiers. The position of each placeholder is the number of
// distinct variables seen before it plus one, so a repeated variable still
// advances the index. Numeric variables become %N$d, everything else %N$s.
func ConvertPlaceholders(text string) string {
	matches := placeholderPattern.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		name := text[m[2]:m[3]]

		seen := make(map[string]bool)
		for _, prev := range placeholderPattern.FindAllStringSubmatch(text[:m[0]], -1) {
			seen[prev[1]] = true
		}
		index := len(seen) + 1

		spec := "s"
		if numericVariables[name] {
			spec = "d"
		}

		sb.WriteString(text[last:m[0]])
		fmt.Fprintf(&sb, "%%%d$%s", index, spec)
		last = m[1]
	}
	sb.WriteString(text[last:])
	return sb.String()
}
