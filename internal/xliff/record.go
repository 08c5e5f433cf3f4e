// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package xliff

// PluralCategory selects one form of a plural record. The loader keeps
// every category an export names; each output platform decides which
// categories it emits.
type PluralCategory string

// The six CLDR plural categories plus the exact/fractional extensions some
// exports carry.
const (
	Zero       PluralCategory = "zero"
	One        PluralCategory = "one"
	Two        PluralCategory = "two"
	Few        PluralCategory = "few"
	Many       PluralCategory = "many"
	Other      PluralCategory = "other"
	Exact      PluralCategory = "exact"
	Fractional PluralCategory = "fractional"
)

var knownCategories = map[PluralCategory]bool{
	Zero: true, One: true, Two: true, Few: true, Many: true, Other: true,
	Exact: true, Fractional: true,
}

// KnownCategory reports whether s names a recognized plural category.
func KnownCategory(s string) bool {
	return knownCategories[PluralCategory(s)]
}

// PluralForm is one category/value pair of a plural record.
type PluralForm struct {
	Category PluralCategory
	Value    string
}

// Record is a single translation unit. Plain records carry Value; plural
// records carry Forms in document order and an empty Value.
type Record struct {
	Key    string
	Value  string
	Plural bool
	Forms  []PluralForm
}

// File is the parsed record set of one locale's export file. Keys are unique
// within a file; Records preserves document order.
type File struct {
	Locale         string
	TargetLanguage string
	Records        []Record

	index map[string]int
}

// NewFile builds a record set directly from records. Duplicate keys keep the
// first record, matching parser behavior.
func NewFile(locale, targetLanguage string, records ...Record) *File {
	f := &File{Locale: locale, TargetLanguage: targetLanguage}
	for _, r := range records {
		f.add(r)
	}
	return f
}

// Lookup returns the record for key, if present.
func (f *File) Lookup(key string) (Record, bool) {
	i, ok := f.index[key]
	if !ok {
		return Record{}, false
	}
	return f.Records[i], true
}

// Has reports whether key exists in the file.
func (f *File) Has(key string) bool {
	_, ok := f.index[key]
	return ok
}

// Len returns the number of records.
func (f *File) Len() int {
	return len(f.Records)
}

// add appends a record unless its key is already present. The first record
// for a key wins, which keeps keys unique within the file.
func (f *File) add(r Record) {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	if _, exists := f.index[r.Key]; exists {
		return
	}
	f.index[r.Key] = len(f.Records)
	f.Records = append(f.Records, r)
}
