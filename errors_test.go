// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jvalue"
	"github.com/google/go-cmp/cmp"
)

func parseError(t *testing.T, input string) *jvalue.ParseError {
	t.Helper()
	_, err := jvalue.ParseString(input)
	var pe *jvalue.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("ParseString(%#q): got error %v, want *ParseError", input, err)
	}
	return pe
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `at 1:0: expected a value, got end of input`},
		{"{} x", `at 1:3: unexpected input after object value near "x"`},
		{`{"a":[1,]}`, `at 1:8: trailing comma before "]" near "]}" [array < object]`},
		{"[1,\n 2,\n]", `at 3:0: trailing comma before "]" near "]" [array]`},
		{"{\n\t\"a\": tru\n}", `at 2:6: expected "true" near "tru" [object]`},
		{`"\q"`, `at 1:1: invalid escape character 'q' near "\\q\"" [string]`},
		{`["\uD800"]`, `at 1:2: high surrogate U+D800 without a following low surrogate near "\\" [string < array]`},
		{"@", `at 1:0: unexpected character '@' near "@"`},
		{"1.x", `at 1:2: expected digit after decimal point near "x" [number]`},
		{
			strings.Repeat("[", 10),
			`at 1:10: missing "]" at end of input [` + strings.Repeat("array < ", 8) + `... 2 more]`,
		},
	}
	for _, tc := range tests {
		if got := parseError(t, tc.input).Error(); got != tc.want {
			t.Errorf("ParseString(%#q) error:\n got: %s\nwant: %s", tc.input, got, tc.want)
		}
	}
}

func TestErrorLocation(t *testing.T) {
	tests := []struct {
		input    string
		want     jvalue.Location
		fragment string
	}{
		{"{} x", jvalue.Location{
			Span:  jvalue.Span{Pos: 3, End: 4},
			First: jvalue.LineCol{Line: 1, Column: 3},
			Last:  jvalue.LineCol{Line: 1, Column: 4},
		}, "x"},
		{"[1,\n 2,\n]", jvalue.Location{
			Span:  jvalue.Span{Pos: 8, End: 9},
			First: jvalue.LineCol{Line: 3, Column: 0},
			Last:  jvalue.LineCol{Line: 3, Column: 1},
		}, "]"},
		{"[\n", jvalue.Location{
			Span:  jvalue.Span{Pos: 2, End: 2},
			First: jvalue.LineCol{Line: 2, Column: 0},
			Last:  jvalue.LineCol{Line: 2, Column: 0},
		}, ""},
		{`["世界", é]`, jvalue.Location{
			Span:  jvalue.Span{Pos: 11, End: 13},
			First: jvalue.LineCol{Line: 1, Column: 11},
			Last:  jvalue.LineCol{Line: 1, Column: 13},
		}, "é"},
		{`"` + strings.Repeat("x", 40), jvalue.Location{
			Span:  jvalue.Span{Pos: 41, End: 41},
			First: jvalue.LineCol{Line: 1, Column: 41},
			Last:  jvalue.LineCol{Line: 1, Column: 41},
		}, ""},
		{`[1, 2, "abc\zzzzzzzzzzzzzzzzzz"]`, jvalue.Location{
			Span:  jvalue.Span{Pos: 11, End: 27},
			First: jvalue.LineCol{Line: 1, Column: 11},
			Last:  jvalue.LineCol{Line: 1, Column: 27},
		}, `\zzzzzzzzzzzzzzz`},
	}
	for _, tc := range tests {
		pe := parseError(t, tc.input)
		if diff := cmp.Diff(tc.want, pe.Location); diff != "" {
			t.Errorf("ParseString(%#q) location (-want, +got)\n%s", tc.input, diff)
		}
		if pe.Fragment != tc.fragment {
			t.Errorf("ParseString(%#q) fragment: got %q, want %q", tc.input, pe.Fragment, tc.fragment)
		}
	}
}

func TestLocationString(t *testing.T) {
	one := jvalue.Location{First: jvalue.LineCol{Line: 2, Column: 3}, Last: jvalue.LineCol{Line: 2, Column: 7}}
	if got, want := one.String(), "2:3-7"; got != want {
		t.Errorf("Location: got %q, want %q", got, want)
	}
	two := jvalue.Location{First: jvalue.LineCol{Line: 1, Column: 5}, Last: jvalue.LineCol{Line: 3, Column: 0}}
	if got, want := two.String(), "1:5-3:0"; got != want {
		t.Errorf("Location: got %q, want %q", got, want)
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"[1,2,]", "1 | [1,2,]\n  |      ^\n"},
		{"[1,\n 2,\n]", "2 |  2,\n3 | ]\n  | ^\n"},
		{"{\n\t\"a\": tru\n}", "1 | {\n2 | \t\"a\": tru\n  | \t     ^\n3 | }\n"},
		{"[\r\n1 2\r\n]", "1 | [\n2 | 1 2\n  |   ^\n3 | ]\n"},
		{
			strings.Repeat("\n", 9) + "[}\n",
			" 9 | \n10 | [}\n   |  ^\n11 | \n",
		},
	}
	for _, tc := range tests {
		pe := parseError(t, tc.input)
		if got := pe.Snippet([]byte(tc.input)); got != tc.want {
			t.Errorf("Snippet(%#q):\n got: %q\nwant: %q", tc.input, got, tc.want)
		}
	}
}

func TestErrorsIs(t *testing.T) {
	_, err := jvalue.ParseString(`{"a": 1,}`)
	if !errors.Is(err, jvalue.StructuralViolation) {
		t.Errorf("Is(%v, StructuralViolation): got false, want true", err)
	}
	if errors.Is(err, jvalue.TrailingInput) {
		t.Errorf("Is(%v, TrailingInput): got true, want false", err)
	}

	wrapped := fmt.Errorf("loading config: %w", err)
	if !errors.Is(wrapped, jvalue.StructuralViolation) {
		t.Errorf("Is(%v, StructuralViolation): got false, want true", wrapped)
	}
	var pe *jvalue.ParseError
	if !errors.As(wrapped, &pe) {
		t.Fatalf("As(%v): got false, want true", wrapped)
	}
	if pe.Offset() != 8 {
		t.Errorf("Offset: got %d, want 8", pe.Offset())
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind jvalue.ErrorKind
		want string
	}{
		{jvalue.LiteralMismatch, "literal mismatch"},
		{jvalue.StructuralViolation, "structural violation"},
		{jvalue.InvalidEscape, "invalid escape"},
		{jvalue.InvalidCodepoint, "invalid codepoint"},
		{jvalue.UnexpectedCharacter, "unexpected character"},
		{jvalue.TrailingInput, "trailing input"},
		{jvalue.NestingTooDeep, "nesting too deep"},
		{jvalue.UnexpectedEnd, "unexpected end of input"},
		{0, "unknown error kind 0"},
		{100, "unknown error kind 100"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("String(%d): got %q, want %q", tc.kind, got, tc.want)
		}
		if got := tc.kind.Error(); got != tc.want {
			t.Errorf("Error(%d): got %q, want %q", tc.kind, got, tc.want)
		}
	}
}
