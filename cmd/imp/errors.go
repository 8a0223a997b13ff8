package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/imp-lang/imp/pkgs/parser"
)

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		formatParseError(w, parseErr, useColor)
		return
	}

	// Generic error
	_, _ = fmt.Fprintf(w, "%s%v\n", Colorize("Error: ", ColorRed, useColor), err)
}

// formatParseError renders the parser's full diagnostic. The first line is
// the failure message; the rest carries the position, token window, and any
// suggestion, all pre-aligned, so only the first line takes a prefix.
func formatParseError(w io.Writer, err *parser.ParseError, useColor bool) {
	message, rest, more := strings.Cut(err.Detail(), "\n")
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), message)
	if more {
		_, _ = fmt.Fprintln(w, rest)
	}
}

// remainderError reports tokens the grammar left unconsumed. The library
// treats a trailing remainder as a success for composability; a whole-file
// invocation means the whole stream, so the binary reports it as a failure.
func remainderError(tokens, remaining []string) *parser.ParseError {
	pos := len(tokens) - len(remaining)
	e := &parser.ParseError{
		Message:     fmt.Sprintf("unconsumed input starting at '%s'", remaining[0]),
		Token:       remaining[0],
		TokenPos:    pos,
		TotalTokens: len(tokens),
	}

	lo := pos - 3
	if lo < 0 {
		lo = 0
	}
	hi := pos + 4
	if hi > len(tokens) {
		hi = len(tokens)
	}
	e.Window = tokens[lo:hi]
	e.WindowStart = lo
	return e
}
