// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

// Package validate checks every locale's translation records against a fixed
// structural rule set and the base-locale reference. The scan never stops
// early: every record is checked so the caller can apply its severity policy
// with full information.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/session-foundation/session-shared-scripts/internal/xliff"
)

// Severity classifies how serious a problem is.
type Severity string

// Problem severities. Errors are candidates for failing the run; warnings
// are only ever reported.
const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// Kind names the rule a problem violates.
type Kind string

// The problem kinds produced by the rule set.
const (
	MalformedVariable Kind = "malformed_variable"
	DisallowedTag     Kind = "disallowed_tag"
	MalformedTag      Kind = "malformed_tag"
	VariableMismatch  Kind = "variable_mismatch"
	TagCountMismatch  Kind = "tag_count_mismatch"
	UnknownKey        Kind = "unknown_key"
)

// Problem is a single rule violation for one (locale, key) pair.
type Problem struct {
	Locale   string   `json:"locale"`
	Key      string   `json:"string_key"`
	Kind     Kind     `json:"issue_type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report collects problems in insertion order, grouped by locale then key.
type Report struct {
	Problems []Problem `json:"issues"`
}

func (r *Report) add(locale, key string, kind Kind, severity Severity, message string) {
	r.Problems = append(r.Problems, Problem{
		Locale:   locale,
		Key:      key,
		Kind:     kind,
		Severity: severity,
		Message:  message,
	})
}

// HasErrors reports whether any Error-severity problem was recorded.
func (r *Report) HasErrors() bool {
	for _, p := range r.Problems {
		if p.Severity == Error {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of Error-severity problems.
func (r *Report) ErrorCount() int {
	n := 0
	for _, p := range r.Problems {
		if p.Severity == Error {
			n++
		}
	}
	return n
}

// WarningCount returns the number of Warning-severity problems.
func (r *Report) WarningCount() int {
	n := 0
	for _, p := range r.Problems {
		if p.Severity == Warning {
			n++
		}
	}
	return n
}

// ByLocale groups problems by locale, preserving insertion order within each
// group.
func (r *Report) ByLocale() map[string][]Problem {
	byLocale := make(map[string][]Problem)
	for _, p := range r.Problems {
		byLocale[p.Locale] = append(byLocale[p.Locale], p)
	}
	return byLocale
}

// ByKind groups problems by kind, preserving insertion order within each
// group.
func (r *Report) ByKind() map[Kind][]Problem {
	byKind := make(map[Kind][]Problem)
	for _, p := range r.Problems {
		byKind[p.Kind] = append(byKind[p.Kind], p)
	}
	return byKind
}

var (
	variablePattern = regexp.MustCompile(`\{(\w+)\}`)
	namePattern     = regexp.MustCompile(`^\w+$`)

	// Tags allowed in translations. Closing forms and <br> without the
	// trailing slash are accepted too. Matching is case-sensitive.
	allowedTagPattern = regexp.MustCompile(`^</?(?:b|br|span)(?:\s*/)?>`)

	// Anything that looks like a markup tag, allowed or not.
	tagLikePattern = regexp.MustCompile(`^</?(\w+)([^<>]*?)/?>`)

	identPattern = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// Validate runs the full rule set over every file. base is the reference
// record set; files is every locale's record set including the base. The
// scan always completes, even when errors are found.
func Validate(base *xliff.File, files []*xliff.File) *Report {
	report := &Report{}

	for _, f := range files {
		// Rule: every key must exist in the base locale.
		if f.Locale != base.Locale {
			for _, record := range f.Records {
				if !base.Has(record.Key) {
					report.add(f.Locale, record.Key, UnknownKey, Error, fmt.Sprintf(
						"string %q exists in %s but not in the base locale", record.Key, f.Locale))
				}
			}
		}

		for _, record := range f.Records {
			checkRecord(report, f.Locale, base, record, f.Locale == base.Locale)
		}
	}

	return report
}

func checkRecord(report *Report, locale string, base *xliff.File, record xliff.Record, isBase bool) {
	// Structural rules apply to every string, plural forms included.
	if record.Plural {
		for _, form := range record.Forms {
			checkSyntax(report, locale, fmt.Sprintf("%s (plural.%s)", record.Key, form.Category), form.Value)
		}
	} else {
		checkSyntax(report, locale, record.Key, record.Value)
	}

	// Cross-locale rules are exempt for plural records: plural category
	// counts and wording legitimately diverge by language.
	if record.Plural || isBase {
		return
	}

	baseRecord, ok := base.Lookup(record.Key)
	if !ok || baseRecord.Plural {
		return
	}

	checkVariables(report, locale, record.Key, record.Value, baseRecord.Value)
	checkTagCounts(report, locale, record.Key, record.Value, baseRecord.Value)
}

// checkSyntax applies the per-string rules: brace balance and variable
// syntax, tag well-formedness, and the allowed-tag list.
func checkSyntax(report *Report, locale, key, text string) {
	for _, msg := range braceProblems(text) {
		report.add(locale, key, MalformedVariable, Error, msg)
	}
	for _, p := range tagProblems(text) {
		report.add(locale, key, p.kind, Error, p.message)
	}
}

// braceProblems finds curly braces that do not form a valid {variable}.
func braceProblems(text string) []string {
	var problems []string

	for i := 0; i < len(text); {
		switch text[i] {
		case '{':
			end := strings.IndexByte(text[i:], '}')
			if end == -1 {
				problems = append(problems, fmt.Sprintf("unmatched '{' at position %d", i))
				i++
				continue
			}
			end += i
			content := text[i+1 : end]
			if !namePattern.MatchString(content) {
				problems = append(problems, fmt.Sprintf(
					"invalid variable syntax %q at position %d", text[i:end+1], i))
			}
			i = end + 1
		case '}':
			if strings.LastIndexByte(text[:i], '{') == -1 {
				problems = append(problems, fmt.Sprintf("unmatched '}' at position %d", i))
			}
			i++
		default:
			i++
		}
	}

	return problems
}

type tagProblem struct {
	kind    Kind
	message string
}

// tagProblems finds angle-bracket constructs that are not one of the allowed
// tags. A standalone '>' is fine (e.g. "{name} > {conversation}"); every '<'
// must start an allowed tag.
func tagProblems(text string) []tagProblem {
	var problems []tagProblem

	for i := 0; i < len(text); i++ {
		if text[i] != '<' {
			continue
		}
		rest := text[i:]

		if m := allowedTagPattern.FindString(rest); m != "" {
			i += len(m) - 1
			continue
		}

		if m := tagLikePattern.FindStringSubmatch(rest); m != nil {
			name := m[1]
			switch {
			case !identPattern.MatchString(name):
				problems = append(problems, tagProblem{MalformedTag, fmt.Sprintf(
					"tag name %q is not a valid identifier at position %d", name, i)})
			case allowedTagNames[name]:
				problems = append(problems, tagProblem{MalformedTag, fmt.Sprintf(
					"malformed use of tag <%s> at position %d: %q", name, i, m[0])})
			default:
				problems = append(problems, tagProblem{DisallowedTag, fmt.Sprintf(
					"disallowed tag %q at position %d", m[0], i)})
			}
			i += len(m[0]) - 1
			continue
		}

		snippet := rest
		if len(snippet) > 15 {
			snippet = snippet[:15] + "..."
		}
		problems = append(problems, tagProblem{MalformedTag, fmt.Sprintf(
			"invalid '<' at position %d: %q", i, snippet)})
	}

	return problems
}

var allowedTagNames = map[string]bool{"b": true, "br": true, "span": true}

// extractVariables collects {variable} names from a string.
func extractVariables(text string) map[string]bool {
	vars := make(map[string]bool)
	for _, m := range variablePattern.FindAllStringSubmatch(text, -1) {
		vars[m[1]] = true
	}
	return vars
}

// extractAllowedTags counts allowed tags by name, treating opening and
// closing forms alike.
func extractAllowedTags(text string) map[string]int {
	counts := make(map[string]int)
	for i := 0; i < len(text); i++ {
		if text[i] != '<' {
			continue
		}
		if m := tagLikePattern.FindStringSubmatch(text[i:]); m != nil && allowedTagNames[m[1]] {
			counts[m[1]]++
			i += len(m[0]) - 1
		}
	}
	return counts
}

// checkVariables enforces variable-set equality with the base string.
// Variable tokens are programmatic substitutions and must match exactly.
func checkVariables(report *Report, locale, key, text, baseText string) {
	vars := extractVariables(text)
	baseVars := extractVariables(baseText)

	var missing, extra []string
	for v := range baseVars {
		if !vars[v] {
			missing = append(missing, v)
		}
	}
	for v := range vars {
		if !baseVars[v] {
			extra = append(extra, v)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return
	}
	sort.Strings(missing)
	sort.Strings(extra)

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing variables: {%s}", strings.Join(missing, ", ")))
	}
	if len(extra) > 0 {
		parts = append(parts, fmt.Sprintf("extra variables not in base: {%s}", strings.Join(extra, ", ")))
	}
	report.add(locale, key, VariableMismatch, Error, strings.Join(parts, "; "))
}

// checkTagCounts compares allowed-tag counts with the base string. A
// mismatch is only a warning: languages may legitimately need different
// markup density.
func checkTagCounts(report *Report, locale, key, text, baseText string) {
	counts := extractAllowedTags(text)
	baseCounts := extractAllowedTags(baseText)

	names := make(map[string]bool)
	for name := range counts {
		names[name] = true
	}
	for name := range baseCounts {
		names[name] = true
	}

	var mismatched []string
	for name := range names {
		if counts[name] != baseCounts[name] {
			mismatched = append(mismatched, fmt.Sprintf(
				"<%s> expected %d, found %d", name, baseCounts[name], counts[name]))
		}
	}
	if len(mismatched) == 0 {
		return
	}
	sort.Strings(mismatched)
	report.add(locale, key, TagCountMismatch, Warning,
		"tag count differs from base: "+strings.Join(mismatched, "; "))
}
