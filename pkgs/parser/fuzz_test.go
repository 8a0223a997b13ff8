package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/imp-lang/imp/pkgs/lexer"
)

// addSeedCorpus seeds a fuzz target with representative programs: every
// command form, expression shapes at each precedence level, boundary inputs,
// and a few malformed programs that exercise the failure paths.
func addSeedCorpus(f *testing.F) {
	seeds := []string{
		// Valid programs.
		"SKIP",
		"x:=1",
		"x:=1+2*3",
		"x := y - 1",
		"x:=(1+2)*3",
		"IF x<=y THEN x:=1 ELSE y:=2 END",
		"IF true THEN SKIP ELSE SKIP END",
		"IF not false && x==y THEN SKIP ELSE SKIP END",
		"WHILE 0<=x DO x:=x-1 END",
		"x:=1;y:=2;SKIP",
		"IF x<=y THEN WHILE x<=y DO x:=x+1 END ELSE SKIP END",

		// Boundary and malformed inputs.
		"",
		" \t\n",
		"IF x THEN SKIP END",
		"x+1==y",
		"WHILE (",
		"x:=",
		"((((",
		";;;;",
		"IFx:=1",
		"skip",
		"x:=99999999999999999999",

		// Pathological shapes.
		strings.Repeat("(", 64),
		strings.Repeat("not ", 64) + "true",
		strings.Repeat("x:=1;", 64) + "SKIP",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
}

// FuzzParseNoPanic asserts total safety: any input either parses or returns
// a ParseError, and never panics or loops.
func FuzzParseNoPanic(f *testing.F) {
	addSeedCorpus(f)

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 64*1024 {
			t.Skip("input too large")
		}

		res, err := Parse(input)
		if err != nil {
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) returned a non-ParseError: %v", input, err)
			}
			if pe.Message == "" {
				t.Fatalf("Parse(%q) returned an empty failure message", input)
			}
			return
		}

		if res.Command == nil {
			t.Fatalf("Parse(%q) succeeded without a command", input)
		}
		tokens := lexer.Tokenize(input)
		if len(res.Remaining) > len(tokens) {
			t.Fatalf("Parse(%q) left %d tokens from a %d token stream",
				input, len(res.Remaining), len(tokens))
		}
	})
}

// FuzzParseDeterminism asserts that parsing is a pure function of its input.
func FuzzParseDeterminism(f *testing.F) {
	addSeedCorpus(f)

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 64*1024 {
			t.Skip("input too large")
		}

		first, errFirst := Parse(input)
		second, errSecond := Parse(input)

		if (errFirst == nil) != (errSecond == nil) {
			t.Fatalf("Parse(%q) disagreed on success between runs", input)
		}
		if errFirst != nil {
			if errFirst.Error() != errSecond.Error() {
				t.Fatalf("Parse(%q) failure messages differ: %q vs %q",
					input, errFirst.Error(), errSecond.Error())
			}
			return
		}
		if first.Command != second.Command {
			t.Fatalf("Parse(%q) produced different commands:\n%v\n%v",
				input, first.Command, second.Command)
		}
	})
}

// FuzzParseTokensNoPanic feeds arbitrary token slices to the grammar,
// including tokens the tokenizer could never produce.
func FuzzParseTokensNoPanic(f *testing.F) {
	f.Add("x := 1")
	f.Add("IF x1 THEN mixedCase 99x END")
	f.Add(":= := :=")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 16*1024 {
			t.Skip("input too large")
		}

		tokens := strings.Fields(input)
		res, err := ParseTokens(tokens)
		if err == nil && res.Command == nil {
			t.Fatalf("ParseTokens(%q) succeeded without a command", tokens)
		}
	})
}
