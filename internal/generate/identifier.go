// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Session Foundation

package generate

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// CollisionError reports two distinct keys mapping to the same generated
// identifier. It is fatal for the affected platform pass.
type CollisionError struct {
	Identifier string
	Key        string
	Existing   string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("identifier collision: keys %q and %q both map to %q",
		e.Existing, e.Key, e.Identifier)
}

// CamelIdentifier derives a lowerCamelCase identifier from a snake_case key.
// The derivation is deterministic: the same key always yields the same
// identifier.
func CamelIdentifier(key string) string {
	return strcase.ToLowerCamel(key)
}

// ConstIdentifier derives an UPPER_CASE constant name from a key.
func ConstIdentifier(key string) string {
	return strings.ToUpper(key)
}

// IdentifierSet tracks derived identifiers and rejects collisions.
type IdentifierSet struct {
	byIdent map[string]string
}

// NewIdentifierSet returns an empty tracker.
func NewIdentifierSet() *IdentifierSet {
	return &IdentifierSet{byIdent: make(map[string]string)}
}

// Add records that key derived to identifier, failing with a CollisionError
// if a different key already produced the same identifier.
func (s *IdentifierSet) Add(key, identifier string) error {
	if existing, ok := s.byIdent[identifier]; ok && existing != key {
		return &CollisionError{Identifier: identifier, Key: key, Existing: existing}
	}
	s.byIdent[identifier] = key
	return nil
}
