package core

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

// ============================================================================
// Conversion Function Benchmarks
// ============================================================================

// BenchmarkParseInt benchmarks integer cell parsing.
// Every id and foreign key column goes through it.
func BenchmarkParseInt(b *testing.B) {
	testCases := []string{"1", "  25 ", "10091", "-3"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			_, _ = ParseInt(tc)
		}
	}
}

// BenchmarkParseOptionalInt benchmarks nullable integer parsing, including
// the empty and \N forms.
func BenchmarkParseOptionalInt(b *testing.B) {
	testCases := []string{"", `\N`, "7", " 42 "}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			_, _ = ParseOptionalInt(tc)
		}
	}
}

// ============================================================================
// Buffer and Rewrite Benchmarks
// ============================================================================

// BenchmarkBuffer_Append benchmarks writing typed values to the COPY buffer.
func BenchmarkBuffer_Append(b *testing.B) {
	buf := NewBuffer("id", "name", "generation_id", "is_default")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = buf.Append(int64(i), "bulbasaur", ToPgText(""), true)
	}
}

func regionSource(rows int) string {
	var sb strings.Builder
	sb.WriteString("id,identifier,generation_id\n")
	for i := 1; i <= rows; i++ {
		fmt.Fprintf(&sb, "%d,region-%d,%d\n", i, i, i%9+1)
	}
	return sb.String()
}

// BenchmarkRewrite benchmarks a full source rewrite of 1000 rows.
func BenchmarkRewrite(b *testing.B) {
	def := regionDefinition()
	src := regionSource(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Rewrite(strings.NewReader(src), def, def.BuildParams); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkBOMSkippingReader benchmarks the BOM check on a large source.
func BenchmarkBOMSkippingReader(b *testing.B) {
	src := "\ufeff" + regionSource(1000)

	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = io.Copy(io.Discard, NewBOMSkippingReader(strings.NewReader(src)))
	}
}
