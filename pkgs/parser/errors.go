package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Failure messages are part of the parser's contract: callers and tests match
// on them verbatim, so they must not drift.
const (
	// MsgTooManyRecursiveCalls is reported when the recursion budget runs out.
	MsgTooManyRecursiveCalls = "Too many recursive calls"

	// MsgExpectedRelational is reported when an arithmetic expression appears
	// in boolean position without a relational operator after it.
	MsgExpectedRelational = "Expected '==' or '<=' after arithmetic expression"

	msgExpectedIdentifier = "expected an identifier."
	msgExpectedNumber     = "expected a number."
)

// msgExpected renders the single-token expectation message.
func msgExpected(tok string) string {
	return "expected '" + tok + "'."
}

// ParseError describes a parse failure. Error returns exactly the failure
// message; Detail renders a multi-line report with the failure position, a
// token window with a caret, and any suggestion.
type ParseError struct {
	Message string

	// Token is the token the parser stopped on, empty at end of input.
	Token       string
	TokenPos    int
	TotalTokens int

	// Window is a short slice of the token stream around the failure,
	// starting at stream index WindowStart.
	Window      []string
	WindowStart int

	Suggestion string
	Example    string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Detail renders the full diagnostic report for terminal display.
func (e *ParseError) Detail() string {
	var b strings.Builder
	b.WriteString(e.Message)

	switch {
	case e.TotalTokens == 0:
		b.WriteString("\n  --> empty input")
	case e.Token == "":
		fmt.Fprintf(&b, "\n  --> end of input (%d tokens)", e.TotalTokens)
	default:
		fmt.Fprintf(&b, "\n  --> token %d of %d: '%s'", e.TokenPos+1, e.TotalTokens, e.Token)
	}

	rel := e.TokenPos - e.WindowStart
	if e.Token != "" && rel >= 0 && rel < len(e.Window) {
		line := strings.Join(e.Window, " ")
		caret := 0
		for i := 0; i < rel; i++ {
			caret += len(e.Window[i]) + 1
		}
		if e.WindowStart > 0 {
			line = "... " + line
			caret += 4
		}
		if e.WindowStart+len(e.Window) < e.TotalTokens {
			line += " ..."
		}
		fmt.Fprintf(&b, "\n      %s", line)
		fmt.Fprintf(&b, "\n      %s%s", strings.Repeat(" ", caret), strings.Repeat("^", len(e.Window[rel])))
	}

	if e.Suggestion != "" {
		b.WriteString("\n")
		b.WriteString(e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "\nExample: %s", e.Example)
	}
	return b.String()
}

// keywords are the reserved words of the command and boolean grammars, used
// for typo suggestions. Operators are left out: mistyped operators rarely
// resemble one another closely enough to rank.
var keywords = []string{
	"SKIP", "IF", "THEN", "ELSE", "END", "WHILE", "DO",
	"true", "false", "not",
}

// Keywords returns the reserved words of the grammar.
func Keywords() []string {
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}

// suggestKeyword returns the keyword closest to tok, or empty when tok is
// already a keyword, too short to rank, or not close to anything.
func suggestKeyword(tok string) string {
	if len(tok) < 2 {
		return ""
	}
	for _, kw := range keywords {
		if tok == kw {
			return ""
		}
	}

	ranks := fuzzy.RankFindFold(tok, keywords)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		if ranks[0].Distance <= 3 {
			return ranks[0].Target
		}
	}

	// Subsequence matching misses transpositions and doubled letters, so
	// fall back to plain edit distance with a tighter bound.
	best := ""
	bestDist := 3
	for _, kw := range keywords {
		if d := fuzzy.LevenshteinDistance(tok, kw); d < bestDist {
			best = kw
			bestDist = d
		}
	}
	return best
}

// newError builds a ParseError at the parser's current position, capturing a
// window of surrounding tokens for Detail rendering.
func (p *parser) newError(message string) *ParseError {
	e := &ParseError{
		Message:     message,
		Token:       p.current(),
		TokenPos:    p.pos,
		TotalTokens: len(p.tokens),
	}

	lo := p.pos - 3
	if lo < 0 {
		lo = 0
	}
	hi := p.pos + 4
	if hi > len(p.tokens) {
		hi = len(p.tokens)
	}
	if lo < hi {
		e.Window = append([]string(nil), p.tokens[lo:hi]...)
		e.WindowStart = lo
	}
	return e
}

// errExpected reports a single-token mismatch, with a static suggestion for
// the keywords people most often drop.
func (p *parser) errExpected(want string) *ParseError {
	e := p.newError(msgExpected(want))
	switch want {
	case "THEN":
		e.Suggestion = "Add 'THEN' after the condition"
		e.Example = "IF x<=y THEN SKIP ELSE SKIP END"
	case "ELSE":
		e.Suggestion = "Every IF needs an ELSE branch before END"
		e.Example = "IF x<=y THEN SKIP ELSE SKIP END"
	case "DO":
		e.Suggestion = "Add 'DO' after the loop condition"
		e.Example = "WHILE x<=10 DO x:=x+1 END"
	case "END":
		e.Suggestion = "Add 'END' to close the command"
		e.Example = "WHILE x<=10 DO x:=x+1 END"
	case ")":
		e.Suggestion = "Add ')' to close the parenthesized expression"
		e.Example = "x:=(1+2)*3"
	case ":=":
		e.Suggestion = "Assignment uses ':='"
		e.Example = "x:=1"
	}
	return e
}

func (p *parser) errRelational() *ParseError {
	e := p.newError(MsgExpectedRelational)
	e.Suggestion = "Comparisons use '==' or '<=' between arithmetic expressions"
	e.Example = "IF x<=y THEN SKIP ELSE SKIP END"
	return e
}

func (p *parser) errIdentifier() *ParseError {
	e := p.newError(msgExpectedIdentifier)
	e.Suggestion = "Variable names use lowercase letters only"
	e.Example = "x:=1"
	return e
}

func (p *parser) errNumber() *ParseError {
	return p.newError(msgExpectedNumber)
}

func (p *parser) errFuelExhausted() *ParseError {
	return p.newError(MsgTooManyRecursiveCalls)
}
