package parser

import "github.com/imp-lang/imp/pkgs/ast"

// Boolean grammar, two levels:
//
//	conjunction := atomic ('&&' atomic)*
//	atomic      := 'true' | 'false' | 'not' atomic | '(' conjunction ')'
//	             | product ('==' sum | '<=' sum)

func (p *parser) literalTrue() (ast.BExp, error) {
	if err := p.expect("true"); err != nil {
		return nil, err
	}
	return ast.True{}, nil
}

func (p *parser) literalFalse() (ast.BExp, error) {
	if err := p.expect("false"); err != nil {
		return nil, err
	}
	return ast.False{}, nil
}

func (p *parser) notAtomic() (ast.BExp, error) {
	b, err := firstExpect(p, "not", (*parser).atomic)
	if err != nil {
		return nil, err
	}
	return ast.Not{B: b}, nil
}

func (p *parser) parenConjunction() (ast.BExp, error) {
	b, err := firstExpect(p, "(", (*parser).conjunction)
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return b, nil
}

// relational parses product ('==' sum | '<=' sum). The left operand is a bare
// product: an unparenthesized sum cannot appear left of the operator, so
// "x+1==y" does not parse while "y==x+1" does. Parenthesizing the left side
// works, since a primary may contain a full sum.
func (p *parser) relational() (ast.BExp, error) {
	left, err := p.product()
	if err != nil {
		return nil, err
	}

	switch {
	case p.at("=="):
		p.consume("==")
		right, err := p.sum()
		if err != nil {
			return nil, err
		}
		return ast.Eq{L: left, R: right}, nil
	case p.at("<="):
		p.consume("<=")
		right, err := p.sum()
		if err != nil {
			return nil, err
		}
		return ast.Le{L: left, R: right}, nil
	default:
		return nil, p.errRelational()
	}
}

// atomic := 'true' | 'false' | 'not' atomic | '(' conjunction ')'
//         | product ('==' sum | '<=' sum)
//
// The literal branches are listed first and win whenever they apply: "true"
// in boolean position is always the literal, never a variable reference.
func (p *parser) atomic() (ast.BExp, error) {
	if err := p.enter("atomic"); err != nil {
		return nil, err
	}
	defer p.exit("atomic")

	return alternate(p,
		(*parser).literalTrue,
		(*parser).literalFalse,
		(*parser).notAtomic,
		(*parser).parenConjunction,
		(*parser).relational,
	)
}

// conjunction := atomic ('&&' atomic)*, folded left into And nodes.
func (p *parser) conjunction() (ast.BExp, error) {
	if err := p.enter("conjunction"); err != nil {
		return nil, err
	}
	defer p.exit("conjunction")

	first, err := p.atomic()
	if err != nil {
		return nil, err
	}

	rest := many(p, func(p *parser) (ast.BExp, error) {
		return firstExpect(p, "&&", (*parser).atomic)
	})

	acc := first
	for _, operand := range rest {
		acc = ast.And{L: acc, R: operand}
	}
	return acc, nil
}
