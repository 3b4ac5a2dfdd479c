// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jvalue implements a parser from JSON text to an in-memory tree of
// values, with localized diagnostics for malformed input.
//
// # Parsing
//
// Parse, ParseString, and ParseReader parse a single JSON value. The entire
// input must be consumed, apart from surrounding whitespace:
//
//	v, err := jvalue.ParseString(`{"a": [1, 2, 3], "b": {}}`)
//	if err != nil {
//	   log.Fatalf("Parse: %v", err)
//	}
//	a, _ := v.Get("a")
//	log.Printf("a has %d elements", a.Len())
//
// To change the nesting limit, string strictness, or the values accepted at
// the top level, set fields of an Options value and call its methods:
//
//	opts := &jvalue.Options{MaxDepth: 64, StrictStrings: true}
//	v, err := opts.Parse(data)
//
// # Values
//
// A Value is one of six kinds: null, string, Boolean, number, array, or
// object. Numbers are IEEE 754 double-precision values. Arrays preserve the
// order of their elements. Object keys are unique; if a key occurs more than
// once in the input, the last occurrence wins. Values are immutable.
//
// # Errors
//
// A parse failure is reported as a *ParseError, which records the kind of
// failure, its location in the input, the offending fragment of text, and the
// grammar rules that were active where it occurred, innermost first. For
// example, parsing {"a":[1,]} reports:
//
//	at 1:8: trailing comma before "]" near "]}" [array < object]
//
// The parser selects a production by looking at one character of input, and
// commits to it once its opening delimiter has been consumed: after that
// point, any failure is fatal and no other production is attempted.
// ParseError.Fatal reports whether a failure crossed such a commitment point.
//
// Each ErrorKind is also an error, for use with errors.Is:
//
//	if errors.Is(err, jvalue.TrailingInput) {
//	   log.Print("Extra data after the value")
//	}
package jvalue
