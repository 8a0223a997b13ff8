package parser

import "github.com/imp-lang/imp/core/invariant"

// parserFn is a parser for values of type T reading from p's token stream.
// On success the position has advanced past the consumed tokens. On failure
// the position may be anywhere inside the attempted production; alternate is
// responsible for restoring it before trying the next branch.
type parserFn[T any] func(p *parser) (T, error)

// expect consumes exactly one token equal to want. It fails with the
// expectation message when the current token differs or the input is
// exhausted, and consumes nothing on failure.
func (p *parser) expect(want string) error {
	if !p.at(want) {
		return p.errExpected(want)
	}
	p.consume(want)
	return nil
}

// firstExpect consumes want and then runs body on the remainder.
func firstExpect[T any](p *parser, want string, body parserFn[T]) (T, error) {
	if err := p.expect(want); err != nil {
		var zero T
		return zero, err
	}
	return body(p)
}

// alternate tries each alternative in order, restarting every attempt from
// the position the chain began at. The first success wins and earlier
// failures are discarded; when every alternative fails, the last failure is
// returned.
func alternate[T any](p *parser, alts ...parserFn[T]) (T, error) {
	invariant.Precondition(len(alts) > 0, "alternation requires at least one alternative")

	start := p.pos
	var err error
	for _, alt := range alts {
		p.pos = start
		var v T
		v, err = alt(p)
		if err == nil {
			return v, nil
		}
	}
	p.pos = start
	var zero T
	return zero, err
}

// many runs item repeatedly, collecting results until it fails, and leaves
// the position where the failed attempt began. It never fails itself: a
// failing first attempt yields an empty slice. Every successful attempt must
// consume at least one token, otherwise the loop could never reach the end
// of the stream.
func many[T any](p *parser, item parserFn[T]) []T {
	var out []T
	for {
		start := p.pos
		v, err := item(p)
		if err != nil {
			p.pos = start
			return out
		}
		invariant.Invariant(p.pos > start,
			"repetition must consume at least one token, stuck at pos %d of %d", p.pos, len(p.tokens))
		out = append(out, v)
	}
}
