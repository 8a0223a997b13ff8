package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/imp-lang/imp/pkgs/parser"
	"github.com/imp-lang/imp/pkgs/symtab"
)

// DisplayTokens renders the token stream on a single line
func DisplayTokens(w io.Writer, tokens []string) {
	_, _ = fmt.Fprintf(w, "tokens (%d): %s\n", len(tokens), strings.Join(tokens, " "))
}

// DisplaySymbols renders the symbol table, one index per line
func DisplaySymbols(w io.Writer, table *symtab.Table) {
	idents := table.Idents()
	_, _ = fmt.Fprintf(w, "symbols (%d):\n", len(idents))
	for i, ident := range idents {
		_, _ = fmt.Fprintf(w, "  %d: %s\n", i, ident)
	}
}

// DisplayTelemetry renders parse telemetry counters and timings
func DisplayTelemetry(w io.Writer, t *parser.ParseTelemetry) {
	_, _ = fmt.Fprintf(w, "tokens=%d symbols=%d rules=%d max_depth=%d fuel_budget=%d\n",
		t.TokenCount, t.SymbolCount, t.RuleCount, t.MaxDepth, t.FuelBudget)
	_, _ = fmt.Fprintf(w, "lex=%s parse=%s total=%s\n", t.LexTime, t.ParseTime, t.TotalTime)
}
