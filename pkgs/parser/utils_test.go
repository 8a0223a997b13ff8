package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imp-lang/imp/pkgs/lexer"
	"github.com/imp-lang/imp/pkgs/symtab"
)

// newTestParser builds a parser over source with the default budget, for
// exercising grammar rules directly.
func newTestParser(source string) *parser {
	tokens := lexer.Tokenize(source)
	budget := defaultFuel(len(tokens))
	return &parser{
		tokens: tokens,
		syms:   symtab.Build(tokens),
		fuel:   budget,
		budget: budget,
		config: &ParserConfig{},
	}
}

// mustParse parses source and requires success with no tokens left over.
func mustParse(t *testing.T, source string) *Result {
	t.Helper()

	res, err := Parse(source)
	require.NoError(t, err, "parse %q", source)
	require.NotNil(t, res.Command, "parse %q returned no command", source)
	require.Empty(t, res.Remaining, "parse %q left tokens unconsumed", source)
	return res
}

// requireParseError requires err to be a *ParseError carrying exactly
// wantMsg, and returns it for further field checks.
func requireParseError(t *testing.T, err error, wantMsg string) *ParseError {
	t.Helper()

	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "error %v is not a *ParseError", err)
	require.Equal(t, wantMsg, pe.Error())
	return pe
}
