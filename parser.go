// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"fmt"
	"io"

	"go4.org/mem"
)

// DefaultMaxDepth is the container nesting limit used when Options.MaxDepth
// is zero.
const DefaultMaxDepth = 1000

// TopLevel selects which productions are accepted for the outermost value.
type TopLevel byte

const (
	// AnyValue accepts any JSON value at the top level.
	AnyValue TopLevel = iota

	// ContainerOrNull accepts only an object, an array, or null at the top
	// level. Nested values are not restricted.
	ContainerOrNull
)

func (t TopLevel) String() string {
	switch t {
	case AnyValue:
		return "any"
	case ContainerOrNull:
		return "container"
	}
	return fmt.Sprintf("TopLevel(%d)", byte(t))
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the strings
// produced by the String method.
func (t *TopLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "any", "":
		*t = AnyValue
	case "container":
		*t = ContainerOrNull
	default:
		return fmt.Errorf("unknown top-level mode %q", text)
	}
	return nil
}

// Options control the behavior of the parser. A nil *Options is ready for
// use and provides default settings.
type Options struct {
	// MaxDepth is the maximum nesting depth of arrays and objects.
	// If zero, DefaultMaxDepth is used; if negative, depth is not limited.
	MaxDepth int

	// StrictStrings, if true, rejects unescaped control characters and invalid
	// UTF-8 inside string literals. By default they are copied through.
	StrictStrings bool

	// TopLevel selects the productions accepted for the outermost value.
	TopLevel TopLevel
}

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) strict() bool { return o != nil && o.StrictStrings }

func (o *Options) topLevel() TopLevel {
	if o == nil {
		return AnyValue
	}
	return o.TopLevel
}

// Parse parses src as a single JSON value with default options.
// In case of error, the concrete type of the error is *ParseError.
func Parse(src []byte) (Value, error) { return (*Options)(nil).Parse(src) }

// ParseString parses s as a single JSON value with default options.
func ParseString(s string) (Value, error) { return (*Options)(nil).ParseString(s) }

// ParseReader reads all of r and parses it as a single JSON value with
// default options.
func ParseReader(r io.Reader) (Value, error) { return (*Options)(nil).ParseReader(r) }

// Parse parses src as a single JSON value. The entire input must be consumed,
// apart from leading and trailing whitespace. In case of a parse error, the
// concrete type of the error is *ParseError.
func (o *Options) Parse(src []byte) (Value, error) { return o.parse(mem.B(src)) }

// ParseString parses s as a single JSON value.
func (o *Options) ParseString(s string) (Value, error) { return o.parse(mem.S(s)) }

// ParseReader reads all of r and parses it as a single JSON value.
// An error reading r is returned as-is.
func (o *Options) ParseReader(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, err
	}
	return o.Parse(data)
}

func (o *Options) parse(src mem.RO) (Value, error) {
	p := parser{src: src, maxDepth: o.maxDepth(), strict: o.strict()}
	v, err := p.document(o.topLevel())
	if err != nil {
		return Value{}, finish(src, err)
	}
	return v, nil
}

// A parser holds the input and settings for a single parse. It has no other
// state: each production is a function from an input offset to a value and
// the offset following it, or a failure.
type parser struct {
	src      mem.RO
	maxDepth int
	strict   bool
}

// A production parses a value beginning at offset pos, inside depth enclosing
// containers.
type production func(pos, depth int) (Value, int, *ParseError)

// document parses the complete input as a single value surrounded by optional
// whitespace.
func (p parser) document(top TopLevel) (Value, *ParseError) {
	var v Value
	var end int
	var err *ParseError
	switch top {
	case ContainerOrNull:
		v, end, err = p.choice(p.skipSpace(0), 0, "object, array, or null",
			p.object, p.array, p.null)
	default:
		v, end, err = p.value(0, 0)
	}
	if err != nil {
		return Value{}, err
	}
	if end = p.skipSpace(end); end < p.src.Len() {
		return Value{}, fatal(TrailingInput, end, "unexpected input after %v value", v.Kind())
	}
	return v, nil
}

// choice tries each of alts in order at pos, and returns the result of the
// first that succeeds. A fatal failure stops the search. If every
// alternative fails recoverably, choice reports a recoverable failure naming
// what was expected.
func (p parser) choice(pos, depth int, expected string, alts ...production) (Value, int, *ParseError) {
	for _, alt := range alts {
		v, end, err := alt(pos, depth)
		if err == nil || err.Fatal {
			return v, end, err
		}
	}
	if p.atEnd(pos) {
		return Value{}, pos, fail(UnexpectedEnd, pos, "expected %s, got end of input", expected)
	}
	return Value{}, pos, fail(LiteralMismatch, pos, "expected %s", expected)
}

// value parses a single value of any type after optional whitespace. It
// selects a production by examining one character of lookahead.
func (p parser) value(pos, depth int) (Value, int, *ParseError) {
	pos = p.skipSpace(pos)
	c, err := p.peek(pos)
	if err != nil {
		return Value{}, pos, err
	}
	switch {
	case c == '{':
		return p.object(pos, depth)
	case c == '[':
		return p.array(pos, depth)
	case c == '"':
		return p.quoted(pos, depth)
	case c == '-' || isDigit(c):
		return p.number(pos, depth)
	case c == 'f':
		return p.keyword(pos, "false", Bool(false))
	case c == 't':
		return p.keyword(pos, "true", Bool(true))
	case c == 'n':
		return p.null(pos, depth)
	}
	r, _ := mem.DecodeRune(p.src.SliceFrom(pos))
	return Value{}, pos, fatal(UnexpectedCharacter, pos, "unexpected character %q", r)
}

// enter checks that a container opened at pos, inside depth enclosing
// containers, does not exceed the nesting limit.
func (p parser) enter(pos, depth int) *ParseError {
	if p.maxDepth >= 0 && depth >= p.maxDepth {
		return fatal(NestingTooDeep, pos, "containers nested more than %d deep", p.maxDepth)
	}
	return nil
}

// array parses an array beginning at pos. Once the opening bracket has been
// consumed, all failures are fatal.
func (p parser) array(pos, depth int) (Value, int, *ParseError) {
	if !p.at(pos, '[') {
		return Value{}, pos, fail(LiteralMismatch, pos, `expected "["`)
	}
	if err := p.enter(pos, depth); err != nil {
		return Value{}, pos, within("array", err)
	}
	pos = p.skipSpace(pos + 1)
	if p.at(pos, ']') {
		return Value{kind: ArrayKind}, pos + 1, nil
	}

	var elts []Value
	for {
		if p.atEnd(pos) {
			return Value{}, pos, within("array", fatal(StructuralViolation, pos, `missing "]" at end of input`))
		}
		v, next, err := p.value(pos, depth+1)
		if err != nil {
			return Value{}, next, within("array", cut(err))
		}
		elts = append(elts, v)

		pos = p.skipSpace(next)
		c, err := p.peek(pos)
		if err != nil {
			return Value{}, pos, within("array", fatal(StructuralViolation, pos, `missing "]" at end of input`))
		}
		switch c {
		case ']':
			return Value{kind: ArrayKind, arr: elts}, pos + 1, nil
		case ',':
			pos = p.skipSpace(pos + 1)
			if p.at(pos, ']') {
				return Value{}, pos, within("array", fatal(StructuralViolation, pos, `trailing comma before "]"`))
			}
		default:
			return Value{}, pos, within("array", fatal(StructuralViolation, pos, `expected "," or "]" after array element`))
		}
	}
}

// object parses an object beginning at pos. Once the opening brace has been
// consumed, all failures are fatal. If a key occurs more than once, the last
// occurrence determines its value.
func (p parser) object(pos, depth int) (Value, int, *ParseError) {
	if !p.at(pos, '{') {
		return Value{}, pos, fail(LiteralMismatch, pos, `expected "{"`)
	}
	if err := p.enter(pos, depth); err != nil {
		return Value{}, pos, within("object", err)
	}
	pos = p.skipSpace(pos + 1)
	if p.at(pos, '}') {
		return Value{kind: ObjectKind, obj: make(map[string]Value)}, pos + 1, nil
	}

	members := make(map[string]Value)
	for {
		key, v, next, err := p.member(pos, depth)
		if err != nil {
			return Value{}, next, within("object", err)
		}
		members[key] = v

		pos = p.skipSpace(next)
		c, err := p.peek(pos)
		if err != nil {
			return Value{}, pos, within("object", fatal(StructuralViolation, pos, `missing "}" at end of input`))
		}
		switch c {
		case '}':
			return Value{kind: ObjectKind, obj: members}, pos + 1, nil
		case ',':
			pos = p.skipSpace(pos + 1)
			if p.at(pos, '}') {
				return Value{}, pos, within("object", fatal(StructuralViolation, pos, `trailing comma before "}"`))
			}
		default:
			return Value{}, pos, within("object", fatal(StructuralViolation, pos, `expected "," or "}" after object member`))
		}
	}
}

// member parses a single "key": value pair of an object at pos. It is only
// called once the enclosing object is committed, so all failures are fatal.
func (p parser) member(pos, depth int) (string, Value, int, *ParseError) {
	c, err := p.peek(pos)
	if err != nil {
		return "", Value{}, pos, fatal(StructuralViolation, pos, `missing "}" at end of input`)
	} else if c != '"' {
		return "", Value{}, pos, fatal(StructuralViolation, pos, "expected string key")
	}
	key, next, err := p.text(pos)
	if err != nil {
		return "", Value{}, next, cut(err)
	}

	pos = p.skipSpace(next)
	if !p.at(pos, ':') {
		return "", Value{}, pos, fatal(StructuralViolation, pos, `expected ":" after object key`)
	}
	pos = p.skipSpace(pos + 1)
	if p.atEnd(pos) {
		return "", Value{}, pos, fatal(StructuralViolation, pos, `missing value and "}" at end of input`)
	}
	v, next, err := p.value(pos, depth+1)
	if err != nil {
		return "", Value{}, next, cut(err)
	}
	return key, v, next, nil
}
