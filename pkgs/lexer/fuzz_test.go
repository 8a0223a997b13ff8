package lexer

import (
	"strings"
	"testing"
)

// Fuzz tests for tokenizer determinism and robustness.
//
// Three specialized fuzz functions test different invariants:
//
// 1. FuzzTokenizeNoPanic - Tokenizer never panics, never emits empty tokens
// 2. FuzzTokenizeDeterminism - Same input always produces identical output
// 3. FuzzTokenizeRejoin - Space-joined output re-tokenizes to the same stream

// addSeedCorpus adds common test cases to all fuzz functions
func addSeedCorpus(f *testing.F) {
	// Basic syntax
	f.Add("")
	f.Add("SKIP")
	f.Add("x:=1")
	f.Add("x:=1+2*3")
	f.Add("IF x<=y THEN x:=1 ELSE y:=2 END")
	f.Add("WHILE x<=10 DO x:=x+1 END")

	// Run coalescing edges
	f.Add("==")
	f.Add("=+")
	f.Add("foo123bar")
	f.Add(":=:=:=")
	f.Add("x==y&&not z")

	// Delimiters
	f.Add("((()))")
	f.Add("(x)")
	f.Add("1+(2*3)")
	f.Add(")(")

	// Whitespace kinds
	f.Add(" \t\n\r\f")
	f.Add("a\x00b")
	f.Add("  IF   THEN  ")

	// Pathological
	f.Add(strings.Repeat("a", 4096))
	f.Add(strings.Repeat("(", 1024))
	f.Add(strings.Repeat("=", 1024))
	f.Add(strings.Repeat("x y ", 512))

	// Non-ASCII bytes (classified as other)
	f.Add("\xff\xfe\xfd")
	f.Add("caf\xc3\xa9")
}

// FuzzTokenizeNoPanic verifies the tokenizer never panics and never emits an
// empty or oversized token stream.
func FuzzTokenizeNoPanic(f *testing.F) {
	addSeedCorpus(f)

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Tokenize panicked: %v", r)
			}
		}()

		tokens := Tokenize(input)

		// Tokens are substrings of the input, so their total length can never
		// exceed the input length.
		total := 0
		for i, tok := range tokens {
			if tok == "" {
				t.Errorf("token[%d] is empty", i)
			}
			total += len(tok)
		}
		if total > len(input) {
			t.Errorf("token bytes %d exceed input bytes %d", total, len(input))
		}
		if len(tokens) > len(input) {
			t.Errorf("token count %d exceeds input length %d", len(tokens), len(input))
		}
	})
}

// FuzzTokenizeDeterminism verifies that tokenizing the same input twice
// produces identical streams.
func FuzzTokenizeDeterminism(f *testing.F) {
	addSeedCorpus(f)

	f.Fuzz(func(t *testing.T, input string) {
		first := Tokenize(input)
		second := Tokenize(input)

		if len(first) != len(second) {
			t.Errorf("Non-deterministic token count: %d vs %d", len(first), len(second))
			return
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("Non-deterministic token at index %d: %q vs %q", i, first[i], second[i])
				return
			}
		}
	})
}

// FuzzTokenizeRejoin verifies the reconstruction property: joining the tokens
// with single spaces and tokenizing again yields the same stream.
func FuzzTokenizeRejoin(f *testing.F) {
	addSeedCorpus(f)

	f.Fuzz(func(t *testing.T, input string) {
		first := Tokenize(input)
		second := Tokenize(strings.Join(first, " "))

		if len(first) != len(second) {
			t.Errorf("rejoin changed token count: %d vs %d", len(first), len(second))
			return
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("rejoin changed token %d: %q vs %q", i, first[i], second[i])
				return
			}
		}
	})
}
