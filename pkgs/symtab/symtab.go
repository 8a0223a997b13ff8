// Package symtab assigns variable indices to identifier tokens.
//
// The table is built in one pass over a token stream: each distinct
// identifier gets the next unused index in first-occurrence order, starting
// at 0. Only identifiers are registered; every other token is ignored. An
// identifier is a non-empty token of lowercase ASCII letters, nothing else.
// The lowercase keywords (true, false, not) fit that shape and are
// registered like any other identifier when they appear; the grammar
// decides how a token is used, the table only numbers it.
package symtab

import (
	"github.com/imp-lang/imp/core/invariant"
)

// Table maps identifier tokens to variable indices. Immutable after Build;
// safe for concurrent reads.
type Table struct {
	indices map[string]int
	idents  []string // first-occurrence order
}

// Build scans tokens left to right and registers each identifier the first
// time it appears.
func Build(tokens []string) *Table {
	t := &Table{indices: make(map[string]int)}
	for _, tok := range tokens {
		if !IsIdent(tok) {
			continue
		}
		if _, seen := t.indices[tok]; seen {
			continue
		}
		t.indices[tok] = len(t.idents)
		t.idents = append(t.idents, tok)
	}

	invariant.Postcondition(len(t.indices) == len(t.idents),
		"index map and ident list must stay in sync: %d vs %d", len(t.indices), len(t.idents))

	return t
}

// Lookup returns the index registered for tok. For any token that was not
// registered - a non-identifier, or an identifier absent from the scanned
// stream - it returns Len(), one past the last valid index. The sentinel is
// only meaningful against the table that produced it.
func (t *Table) Lookup(tok string) int {
	if idx, ok := t.indices[tok]; ok {
		return idx
	}
	return len(t.idents)
}

// Len returns the number of registered identifiers.
func (t *Table) Len() int { return len(t.idents) }

// Idents returns the registered identifiers in first-occurrence order.
// The returned slice is a copy.
func (t *Table) Idents() []string {
	out := make([]string, len(t.idents))
	copy(out, t.idents)
	return out
}

// IsIdent reports whether tok is an identifier: non-empty and consisting
// solely of lowercase ASCII letters.
func IsIdent(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < 'a' || tok[i] > 'z' {
			return false
		}
	}
	return true
}
