package parser

import (
	"strconv"

	"github.com/imp-lang/imp/pkgs/ast"
	"github.com/imp-lang/imp/pkgs/lexer"
	"github.com/imp-lang/imp/pkgs/symtab"
)

// Arithmetic grammar, two precedence levels, both left-associative:
//
//	sum     := product (('+' | '-') product)*
//	product := primary ('*' primary)*
//	primary := identifier | number | '(' sum ')'

// identVar consumes one identifier token and resolves it through the symbol
// table. Lowercase words that double as keywords ("true", "not") are valid
// identifiers here; the boolean grammar claims them first in boolean position.
func (p *parser) identVar() (ast.Var, error) {
	tok := p.current()
	if !symtab.IsIdent(tok) {
		return ast.Var{}, p.errIdentifier()
	}
	p.consume(tok)
	return ast.Var{Index: p.syms.Lookup(tok)}, nil
}

func (p *parser) identifier() (ast.AExp, error) {
	v, err := p.identVar()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// number parses a non-negative base-10 integer literal.
func (p *parser) number() (ast.AExp, error) {
	tok := p.current()
	if !isNumber(tok) {
		return nil, p.errNumber()
	}
	value, err := strconv.Atoi(tok)
	if err != nil {
		// digit run too large for int
		return nil, p.errNumber()
	}
	p.consume(tok)
	return ast.Num{Value: value}, nil
}

func isNumber(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if !lexer.IsDigit(tok[i]) {
			return false
		}
	}
	return true
}

// parenSum parses '(' sum ')'.
func (p *parser) parenSum() (ast.AExp, error) {
	e, err := firstExpect(p, "(", (*parser).sum)
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return e, nil
}

// primary := identifier | number | '(' sum ')'
func (p *parser) primary() (ast.AExp, error) {
	if err := p.enter("primary"); err != nil {
		return nil, err
	}
	defer p.exit("primary")

	return alternate(p,
		(*parser).identifier,
		(*parser).number,
		(*parser).parenSum,
	)
}

// product := primary ('*' primary)*, folded left into Mul nodes.
func (p *parser) product() (ast.AExp, error) {
	if err := p.enter("product"); err != nil {
		return nil, err
	}
	defer p.exit("product")

	first, err := p.primary()
	if err != nil {
		return nil, err
	}

	rest := many(p, func(p *parser) (ast.AExp, error) {
		return firstExpect(p, "*", (*parser).primary)
	})

	acc := first
	for _, operand := range rest {
		acc = ast.Mul{L: acc, R: operand}
	}
	return acc, nil
}

// sumOperand is one ('+' | '-') product tail, tagged with its operator so
// the fold can build the matching node.
type sumOperand struct {
	op      byte
	operand ast.AExp
}

// sum := product (('+' | '-') product)*, folded left into Add and Sub nodes,
// so "1-2-3" parses as (1-2)-3.
func (p *parser) sum() (ast.AExp, error) {
	if err := p.enter("sum"); err != nil {
		return nil, err
	}
	defer p.exit("sum")

	first, err := p.product()
	if err != nil {
		return nil, err
	}

	rest := many(p, func(p *parser) (sumOperand, error) {
		return alternate(p,
			func(p *parser) (sumOperand, error) {
				e, err := firstExpect(p, "+", (*parser).product)
				if err != nil {
					return sumOperand{}, err
				}
				return sumOperand{op: '+', operand: e}, nil
			},
			func(p *parser) (sumOperand, error) {
				e, err := firstExpect(p, "-", (*parser).product)
				if err != nil {
					return sumOperand{}, err
				}
				return sumOperand{op: '-', operand: e}, nil
			},
		)
	})

	acc := first
	for _, t := range rest {
		if t.op == '+' {
			acc = ast.Add{L: acc, R: t.operand}
		} else {
			acc = ast.Sub{L: acc, R: t.operand}
		}
	}
	return acc, nil
}
