package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/imp-lang/imp/pkgs/ast"
)

// parseConjunction runs the conjunction rule directly over source.
func parseConjunction(t *testing.T, source string) (ast.BExp, []string, error) {
	t.Helper()

	p := newTestParser(source)
	b, err := p.conjunction()
	return b, p.tokens[p.pos:], err
}

func TestBooleanLiterals(t *testing.T) {
	tests := []struct {
		source string
		want   ast.BExp
	}{
		{"true", ast.True{}},
		{"false", ast.False{}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, rest, err := parseConjunction(t, tt.source)
			require.NoError(t, err)
			require.Empty(t, rest)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNotNesting(t *testing.T) {
	got, rest, err := parseConjunction(t, "not not false")
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, ast.BExp(ast.Not{B: ast.Not{B: ast.False{}}}), got)
}

func TestConjunctionLeftAssociativity(t *testing.T) {
	got, rest, err := parseConjunction(t, "true && false && true")
	require.NoError(t, err)
	require.Empty(t, rest)

	want := ast.And{
		L: ast.And{L: ast.True{}, R: ast.False{}},
		R: ast.True{},
	}
	if diff := cmp.Diff(ast.BExp(want), got); diff != "" {
		t.Errorf("conjunction mismatch (-want +got):\n%s", diff)
	}
}

func TestRelationalOperators(t *testing.T) {
	tests := []struct {
		source string
		want   ast.BExp
	}{
		{
			"x==y",
			ast.Eq{L: ast.Var{Index: 0}, R: ast.Var{Index: 1}},
		},
		{
			"x<=1+2",
			ast.Le{L: ast.Var{Index: 0}, R: ast.Add{L: ast.Num{Value: 1}, R: ast.Num{Value: 2}}},
		},
		{
			"x*2==y",
			ast.Eq{L: ast.Mul{L: ast.Var{Index: 0}, R: ast.Num{Value: 2}}, R: ast.Var{Index: 1}},
		},
		{
			"y==x+1",
			ast.Eq{L: ast.Var{Index: 0}, R: ast.Add{L: ast.Var{Index: 1}, R: ast.Num{Value: 1}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, rest, err := parseConjunction(t, tt.source)
			require.NoError(t, err)
			require.Empty(t, rest)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("conjunction mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The left operand of a relational operator is a bare product, so an
// unparenthesized sum there does not parse. Wrapping it in parentheses
// works, because a primary may contain a full sum.
func TestRelationalLeftOperandIsBareProduct(t *testing.T) {
	_, _, err := parseConjunction(t, "x+1==y")
	requireParseError(t, err, MsgExpectedRelational)

	got, rest, err := parseConjunction(t, "(x+1)==y")
	require.NoError(t, err)
	require.Empty(t, rest)

	want := ast.Eq{
		L: ast.Add{L: ast.Var{Index: 0}, R: ast.Num{Value: 1}},
		R: ast.Var{Index: 1},
	}
	if diff := cmp.Diff(ast.BExp(want), got); diff != "" {
		t.Errorf("conjunction mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingRelationalOperator(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"bare variable", "x"},
		{"bare number", "7"},
		{"product then end", "x*y"},
		{"product then foreign token", "x THEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseConjunction(t, tt.source)
			requireParseError(t, err, MsgExpectedRelational)
		})
	}
}

// "true" in boolean position is always the literal: the literal branch is
// tried before the relational branch, so it can never be read as a variable
// reference even though it is a well-formed identifier.
func TestTrueLiteralWinsOverIdentifier(t *testing.T) {
	got, rest, err := parseConjunction(t, "true")
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, ast.BExp(ast.True{}), got)
}

func TestParenthesizedConjunction(t *testing.T) {
	got, rest, err := parseConjunction(t, "not (x==y)")
	require.NoError(t, err)
	require.Empty(t, rest)

	want := ast.Not{B: ast.Eq{L: ast.Var{Index: 0}, R: ast.Var{Index: 1}}}
	if diff := cmp.Diff(ast.BExp(want), got); diff != "" {
		t.Errorf("conjunction mismatch (-want +got):\n%s", diff)
	}
}

func TestConjunctionOfComparisons(t *testing.T) {
	got, rest, err := parseConjunction(t, "x==y && y<=z")
	require.NoError(t, err)
	require.Empty(t, rest)

	want := ast.And{
		L: ast.Eq{L: ast.Var{Index: 0}, R: ast.Var{Index: 1}},
		R: ast.Le{L: ast.Var{Index: 1}, R: ast.Var{Index: 2}},
	}
	if diff := cmp.Diff(ast.BExp(want), got); diff != "" {
		t.Errorf("conjunction mismatch (-want +got):\n%s", diff)
	}
}
