package lexer

import (
	"strings"
	"testing"
)

// Benchmark suite for tokenizer performance analysis.
//
// - BenchmarkTokenizeCore: Primary performance across syntax complexity levels
// - BenchmarkTokenizeScaling: Linear scaling verification across input sizes
//
// Tokens are substrings of the input, so the hot path allocates only the
// backing slice; per-token cost should stay flat as inputs grow.

// BenchmarkTokenizeCore measures tokenization across syntax complexity levels.
func BenchmarkTokenizeCore(b *testing.B) {
	scenarios := map[string]string{
		"empty":      "",
		"assignment": "x:=1",
		"arithmetic": "x:=1+2*3-(4*5)",
		"program":    "WHILE x<=10 DO IF y==0 THEN x:=x+1 ELSE SKIP END END",
		"realistic":  generateProgram(50),
	}

	for name, input := range scenarios {
		b.Run(name, func(b *testing.B) {
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				tokens := Tokenize(input)
				_ = tokens
			}
		})
	}
}

// BenchmarkTokenizeScaling verifies linear O(n) scaling across input sizes.
// Per-token cost should stay constant regardless of total input size.
func BenchmarkTokenizeScaling(b *testing.B) {
	sizes := map[string]int{
		"small":  10,
		"medium": 100,
		"large":  1000,
		"xlarge": 10000,
	}

	for size, stmtCount := range sizes {
		input := generateProgram(stmtCount)

		b.Run(size, func(b *testing.B) {
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				tokens := Tokenize(input)
				_ = tokens
			}
		})
	}
}

// generateProgram builds a sequence of stmtCount assignment statements.
func generateProgram(stmtCount int) string {
	var sb strings.Builder
	for i := 0; i < stmtCount; i++ {
		if i > 0 {
			sb.WriteString(" ; ")
		}
		sb.WriteString("x := y + 1 * (z - 2)")
	}
	return sb.String()
}
