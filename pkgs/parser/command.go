package parser

import "github.com/imp-lang/imp/pkgs/ast"

// Command grammar:
//
//	sequenced := simple (';' sequenced)?
//	simple    := 'SKIP'
//	           | identifier ':=' sum
//	           | 'WHILE' conjunction 'DO' sequenced 'END'
//	           | 'IF' conjunction 'THEN' sequenced 'ELSE' sequenced 'END'

func (p *parser) skipCmd() (ast.Com, error) {
	if err := p.expect("SKIP"); err != nil {
		return nil, err
	}
	return ast.Skip{}, nil
}

// assignCmd parses identifier ':=' sum.
func (p *parser) assignCmd() (ast.Com, error) {
	v, err := p.identVar()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":="); err != nil {
		return nil, err
	}
	e, err := p.sum()
	if err != nil {
		return nil, err
	}
	return ast.Assign{Var: v.Index, Expr: e}, nil
}

// whileCmd parses 'WHILE' conjunction 'DO' sequenced 'END'.
func (p *parser) whileCmd() (ast.Com, error) {
	cond, err := firstExpect(p, "WHILE", (*parser).conjunction)
	if err != nil {
		return nil, err
	}
	body, err := firstExpect(p, "DO", (*parser).sequenced)
	if err != nil {
		return nil, err
	}
	if err := p.expect("END"); err != nil {
		return nil, err
	}
	return ast.While{Cond: cond, Body: body}, nil
}

// ifCmd parses 'IF' conjunction 'THEN' sequenced 'ELSE' sequenced 'END'.
func (p *parser) ifCmd() (ast.Com, error) {
	cond, err := firstExpect(p, "IF", (*parser).conjunction)
	if err != nil {
		return nil, err
	}
	thenBranch, err := firstExpect(p, "THEN", (*parser).sequenced)
	if err != nil {
		return nil, err
	}
	elseBranch, err := firstExpect(p, "ELSE", (*parser).sequenced)
	if err != nil {
		return nil, err
	}
	if err := p.expect("END"); err != nil {
		return nil, err
	}
	return ast.If{Cond: cond, Then: thenBranch, Else: elseBranch}, nil
}

// simple dispatches between the four command forms. The branches are
// disjoint on their leading token for every valid program, so the order
// only shows in diagnostics: the conditional is the final alternative, and
// its failure is the one that propagates when nothing matches. A malformed
// condition therefore reports the relational diagnostic rather than a
// generic keyword mismatch.
func (p *parser) simple() (ast.Com, error) {
	if err := p.enter("simple"); err != nil {
		return nil, err
	}
	defer p.exit("simple")

	return alternate(p,
		(*parser).skipCmd,
		(*parser).assignCmd,
		(*parser).whileCmd,
		(*parser).ifCmd,
	)
}

// sequenced := simple (';' sequenced)?
//
// The tail is right-recursive, so "a;b;c" parses as Seq(a, Seq(b, c)). When
// a ';' is present but no command follows it, the tail attempt is abandoned
// and the ';' is left unconsumed for the caller.
func (p *parser) sequenced() (ast.Com, error) {
	if err := p.enter("sequenced"); err != nil {
		return nil, err
	}
	defer p.exit("sequenced")

	first, err := p.simple()
	if err != nil {
		return nil, err
	}

	return alternate(p,
		func(p *parser) (ast.Com, error) {
			rest, err := firstExpect(p, ";", (*parser).sequenced)
			if err != nil {
				return nil, err
			}
			return ast.Seq{First: first, Rest: rest}, nil
		},
		func(p *parser) (ast.Com, error) {
			return first, nil
		},
	)
}
