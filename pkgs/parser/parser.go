// Package parser turns IMP source text into abstract syntax trees.
//
// The grammar is parsed by recursive descent with full backtracking: each
// alternative restarts from the position its chain began at, and the first
// alternative that succeeds wins. Recursion is bounded by a fuel budget that
// defaults to a generous multiple of the token count, so no legal program
// can exhaust it; hostile or broken input fails with a distinguished message
// instead of overflowing the stack.
package parser

import (
	"errors"
	"fmt"
	"time"

	"github.com/imp-lang/imp/core/invariant"
	"github.com/imp-lang/imp/pkgs/ast"
	"github.com/imp-lang/imp/pkgs/lexer"
	"github.com/imp-lang/imp/pkgs/symtab"
)

// Result is the outcome of a successful parse.
type Result struct {
	// Command is the parsed program.
	Command ast.Com

	// Remaining holds the tokens the grammar did not consume. A complete
	// program leaves it empty; callers that require full consumption must
	// check it.
	Remaining []string

	// Symbols maps identifier spellings to the indices used by ast.Var
	// and ast.Assign nodes.
	Symbols *symtab.Table

	// Telemetry is nil unless telemetry was enabled.
	Telemetry *ParseTelemetry

	// DebugEvents is nil unless debug tracing was enabled.
	DebugEvents []DebugEvent
}

// parser is the mutable state threaded through the grammar methods.
type parser struct {
	tokens []string
	pos    int
	syms   *symtab.Table

	// fuel is the remaining recursion allowance. Entering a grammar rule
	// takes one unit and leaving restores it, so fuel bounds the depth of
	// the descent rather than the total work.
	fuel   int
	budget int

	depth    int
	maxDepth int
	rules    int

	config      *ParserConfig
	debugEvents []DebugEvent
}

// defaultFuel sizes the recursion budget for a token stream. Each token can
// open only a bounded number of nested rules, so a linear budget with
// headroom for empty input is unreachable by legal programs.
func defaultFuel(tokenCount int) int {
	return 64*tokenCount + 256
}

// Parse tokenizes source and parses it as a sequenced command.
//
// The returned Result holds the command together with the symbol table and
// any tokens left unconsumed. Parse failures are returned as a *ParseError
// whose Error string is the bare failure message.
func Parse(source string, opts ...ParserOpt) (*Result, error) {
	config := &ParserConfig{}
	for _, opt := range opts {
		opt(config)
	}

	var telemetry *ParseTelemetry
	var startTotal, startLex time.Time
	if config.telemetry >= TelemetryBasic {
		telemetry = &ParseTelemetry{}
	}
	if config.telemetry >= TelemetryTiming {
		startTotal = time.Now()
		startLex = startTotal
	}

	tokens := lexer.Tokenize(source)

	if telemetry != nil && config.telemetry >= TelemetryTiming {
		telemetry.LexTime = time.Since(startLex)
	}

	return parseStream(config, tokens, telemetry, startTotal)
}

// ParseTokens parses an already tokenized stream. The tokens need not come
// from lexer.Tokenize, which makes this the entry point for testing grammar
// corners directly.
func ParseTokens(tokens []string, opts ...ParserOpt) (*Result, error) {
	config := &ParserConfig{}
	for _, opt := range opts {
		opt(config)
	}

	var telemetry *ParseTelemetry
	var startTotal time.Time
	if config.telemetry >= TelemetryBasic {
		telemetry = &ParseTelemetry{}
	}
	if config.telemetry >= TelemetryTiming {
		startTotal = time.Now()
	}

	return parseStream(config, tokens, telemetry, startTotal)
}

// parseStream runs the grammar over tokens and assembles the Result.
func parseStream(config *ParserConfig, tokens []string, telemetry *ParseTelemetry, startTotal time.Time) (*Result, error) {
	syms := symtab.Build(tokens)

	budget := config.fuel
	if budget == 0 {
		budget = defaultFuel(len(tokens))
	}
	invariant.Precondition(budget > 0, "fuel budget must be positive, got %d", budget)

	p := &parser{
		tokens: tokens,
		syms:   syms,
		fuel:   budget,
		budget: budget,
		config: config,
	}
	if config.debug > DebugOff {
		p.debugEvents = make([]DebugEvent, 0, 128)
	}

	var startParse time.Time
	if config.telemetry >= TelemetryTiming {
		startParse = time.Now()
	}

	cmd, err := p.sequenced()

	if telemetry != nil {
		telemetry.TokenCount = len(tokens)
		telemetry.SymbolCount = syms.Len()
		telemetry.RuleCount = p.rules
		telemetry.MaxDepth = p.maxDepth
		telemetry.FuelBudget = budget
		if config.telemetry >= TelemetryTiming {
			telemetry.ParseTime = time.Since(startParse)
			telemetry.TotalTime = time.Since(startTotal)
		}
	}

	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			if kw := suggestKeyword(pe.Token); kw != "" {
				pe.Suggestion = fmt.Sprintf("Did you mean '%s'?", kw)
			}
		}
		return nil, err
	}

	invariant.Postcondition(cmd != nil, "successful parse must produce a command")

	return &Result{
		Command:     cmd,
		Remaining:   tokens[p.pos:],
		Symbols:     syms,
		Telemetry:   telemetry,
		DebugEvents: p.debugEvents,
	}, nil
}

// current returns the token at the cursor, or the empty string at end of
// input. The tokenizer never produces empty tokens, so the sentinel is
// unambiguous.
func (p *parser) current() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *parser) at(tok string) bool {
	return p.pos < len(p.tokens) && p.tokens[p.pos] == tok
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

// consume advances past tok, which the caller must already have matched.
func (p *parser) consume(tok string) {
	invariant.Precondition(p.at(tok), "consume requires the current token to be %q", tok)
	if p.config.debug >= DebugDetailed {
		p.debugEvent("consume", tok)
	}
	p.pos++
}

// enter charges one unit of fuel and opens a grammar rule. It fails with the
// fuel exhaustion message when the budget is spent; on failure no state is
// changed, so callers return immediately without a matching exit.
func (p *parser) enter(rule string) error {
	if p.fuel == 0 {
		return p.errFuelExhausted()
	}
	p.fuel--
	p.depth++
	p.rules++
	if p.depth > p.maxDepth {
		p.maxDepth = p.depth
	}
	if p.config.debug >= DebugPaths {
		p.debugEvent("enter_"+rule, "")
	}
	return nil
}

// exit closes a grammar rule and restores its fuel unit. It runs on every
// return path, including failures, so fuel always reflects the current
// descent depth.
func (p *parser) exit(rule string) {
	p.fuel++
	p.depth--
	if p.config.debug >= DebugPaths {
		p.debugEvent("exit_"+rule, "")
	}
}

func (p *parser) debugEvent(event, context string) {
	p.debugEvents = append(p.debugEvents, DebugEvent{
		Timestamp: time.Now(),
		Event:     event,
		TokenPos:  p.pos,
		Context:   context,
	})
}
