// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jvalue"
)

// benchInput returns a JSON document of n records with a mix of value types.
func benchInput(n int) []byte {
	var sb strings.Builder
	sb.WriteString("[\n")
	for i := range n {
		if i > 0 {
			sb.WriteString(",\n")
		}
		fmt.Fprintf(&sb, `  {"id": %d, "name": "record é %d", "score": %g, "ok": %v, "tags": ["a", "b\n", null]}`,
			i, i, float64(i)*1.25, i%2 == 0)
	}
	sb.WriteString("\n]\n")
	return []byte(sb.String())
}

func BenchmarkParse(b *testing.B) {
	input := benchInput(2000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Unmarshal", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Parse", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			if _, err := jvalue.Parse(input); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("ParseStrict", func(b *testing.B) {
		opts := &jvalue.Options{StrictStrings: true}
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			if _, err := opts.Parse(input); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
