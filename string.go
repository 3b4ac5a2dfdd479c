// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"fmt"
	"unicode/utf8"

	"github.com/creachadair/jvalue/internal/escape"
	"go4.org/mem"
)

// quoted parses a string literal at pos.
func (p parser) quoted(pos, _ int) (Value, int, *ParseError) {
	s, end, err := p.text(pos)
	if err != nil {
		return Value{}, end, err
	}
	return String(s), end, nil
}

// text decodes a string literal at pos and returns its contents. The caller
// must have already checked that the byte at pos is a quotation mark. Once
// the opening quotation mark is consumed, all failures are fatal.
func (p parser) text(pos int) (string, int, *ParseError) {
	if !p.at(pos, '"') {
		panic(fmt.Sprintf("jvalue: string literal at offset %d does not begin with a quotation mark", pos))
	}
	start := pos + 1
	i := p.plain(start)
	if p.at(i, '"') {
		// Fast path: no escapes or special bytes.
		return p.src.Slice(start, i).StringCopy(), i + 1, nil
	}

	buf := mem.Append(make([]byte, 0, i-start+16), p.src.Slice(start, i))
	for {
		if p.atEnd(i) {
			return "", i, within("string", fatal(StructuralViolation, i, `missing closing quotation mark`))
		}
		switch c := p.src.At(i); {
		case c == '"':
			return string(buf), i + 1, nil

		case c == '\\':
			r, next, err := p.escape(i)
			if err != nil {
				return "", next, within("string", err)
			}
			buf = utf8.AppendRune(buf, r)
			i = next

		case c < ' ':
			// Reached only in strict mode; see plain.
			return "", i, within("string", fatal(InvalidEscape, i, "unescaped control character %q", c))

		default:
			// Reached only in strict mode, for a multi-byte sequence.
			r, n := mem.DecodeRune(p.src.SliceFrom(i))
			if r == utf8.RuneError && n <= 1 {
				return "", i, within("string", fatal(InvalidCodepoint, i, "invalid UTF-8 encoding"))
			}
			buf = mem.Append(buf, p.src.Slice(i, i+n))
			i += n
		}

		next := p.plain(i)
		buf = mem.Append(buf, p.src.Slice(i, next))
		i = next
	}
}

// plain returns the offset of the first byte at or after pos that cannot be
// copied through to the decoded string verbatim: a quotation mark, a
// backslash, or, in strict mode, a control character or non-ASCII byte.
func (p parser) plain(pos int) int {
	for pos < p.src.Len() {
		c := p.src.At(pos)
		if c == '"' || c == '\\' || (p.strict && (c < ' ' || c >= utf8.RuneSelf)) {
			break
		}
		pos++
	}
	return pos
}

// escape decodes the escape sequence beginning with the backslash at pos.
// It returns the rune denoted and the offset following the sequence.
func (p parser) escape(pos int) (rune, int, *ParseError) {
	if p.atEnd(pos + 1) {
		return 0, pos + 1, fatal(InvalidEscape, pos, "incomplete escape sequence at end of input")
	}
	e := p.src.At(pos + 1)
	if b, ok := escape.Designator(e); ok {
		return rune(b), pos + 2, nil
	} else if e != 'u' {
		r, _ := mem.DecodeRune(p.src.SliceFrom(pos + 1))
		return 0, pos, fatal(InvalidEscape, pos, "invalid escape character %q", r)
	}
	return p.unicodeEscape(pos)
}

// unicodeEscape decodes a "\uXXXX" escape at pos, or a pair of them if the
// first denotes a high surrogate.
func (p parser) unicodeEscape(pos int) (rune, int, *ParseError) {
	cp, ok := escape.ParseHex4(p.src.SliceFrom(pos + 2))
	if !ok {
		return 0, pos, fatal(InvalidEscape, pos, `malformed Unicode escape, want "\uXXXX"`)
	}
	next := pos + 6

	var r rune
	switch {
	case !escape.IsSurrogate(cp):
		r = rune(cp)

	case escape.IsHigh(cp):
		rest := p.src.SliceFrom(next)
		if !mem.HasPrefix(rest, mem.S(`\u`)) {
			return 0, pos, fatal(InvalidCodepoint, pos, "high surrogate U+%04X without a following low surrogate", cp)
		}
		low, ok := escape.ParseHex4(rest.SliceFrom(2))
		if !ok {
			return 0, next, fatal(InvalidEscape, next, `malformed Unicode escape, want "\uXXXX"`)
		} else if !escape.IsLow(low) {
			return 0, pos, fatal(InvalidCodepoint, pos, "high surrogate U+%04X followed by U+%04X, not a low surrogate", cp, low)
		}
		r = escape.Combine(cp, low)
		next += 6

	default:
		return 0, pos, fatal(InvalidCodepoint, pos, "unexpected low surrogate U+%04X", cp)
	}

	if !utf8.ValidRune(r) {
		return 0, pos, fatal(InvalidCodepoint, pos, "escape denotes invalid code point U+%04X", r)
	}
	return r, next, nil
}
