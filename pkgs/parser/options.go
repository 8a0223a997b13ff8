package parser

import "time"

// ParserOpt configures a parse run. Options are applied in order, so later
// options win when they touch the same setting.
type ParserOpt func(*ParserConfig)

// TelemetryMode controls how much measurement a parse run records.
type TelemetryMode int

const (
	// TelemetryOff disables all telemetry collection (default).
	TelemetryOff TelemetryMode = iota
	// TelemetryBasic collects counters: tokens, symbols, rules, depth.
	TelemetryBasic
	// TelemetryTiming additionally records wall-clock phase durations.
	TelemetryTiming
)

// DebugLevel controls debug event collection during parsing.
type DebugLevel int

const (
	// DebugOff disables debug event collection (default).
	DebugOff DebugLevel = iota
	// DebugPaths records grammar rule entry and exit events.
	DebugPaths
	// DebugDetailed additionally records every consumed token.
	DebugDetailed
)

// ParserConfig holds the resolved settings for one parse run.
type ParserConfig struct {
	fuel      int
	telemetry TelemetryMode
	debug     DebugLevel
}

// WithFuel overrides the recursion budget. The default budget grows with the
// token count and is large enough for any legal program, so this is mainly
// useful for forcing exhaustion in tests or hardening against hostile input.
func WithFuel(fuel int) ParserOpt {
	return func(c *ParserConfig) {
		c.fuel = fuel
	}
}

// WithTelemetryBasic enables counter telemetry.
func WithTelemetryBasic() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables counter and timing telemetry.
func WithTelemetryTiming() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryTiming
	}
}

// WithDebugPaths enables rule entry/exit tracing.
func WithDebugPaths() ParserOpt {
	return func(c *ParserConfig) {
		c.debug = DebugPaths
	}
}

// WithDebugDetailed enables rule tracing plus per-token consumption events.
func WithDebugDetailed() ParserOpt {
	return func(c *ParserConfig) {
		c.debug = DebugDetailed
	}
}

// ParseTelemetry captures performance and shape counters for one parse run.
// Timing fields are only populated at TelemetryTiming.
type ParseTelemetry struct {
	LexTime   time.Duration
	ParseTime time.Duration
	TotalTime time.Duration

	TokenCount  int
	SymbolCount int

	// RuleCount is the number of grammar rule activations.
	RuleCount int
	// MaxDepth is the deepest rule nesting reached.
	MaxDepth int
	// FuelBudget is the recursion allowance the run started with.
	FuelBudget int
}

// DebugEvent is a single trace record emitted during parsing.
type DebugEvent struct {
	Timestamp time.Time
	Event     string
	TokenPos  int
	Context   string
}
