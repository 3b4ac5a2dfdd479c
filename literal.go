// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"math"

	"go4.org/mem"
)

// skipSpace returns the offset of the first non-whitespace byte at or after
// pos, or the length of the input.
func (p parser) skipSpace(pos int) int {
	for pos < p.src.Len() && isSpace(p.src.At(pos)) {
		pos++
	}
	return pos
}

// peek returns the byte at pos without consuming it. It fails recoverably at
// the end of the input.
func (p parser) peek(pos int) (byte, *ParseError) {
	if p.atEnd(pos) {
		return 0, fail(UnexpectedEnd, pos, "expected a value, got end of input")
	}
	return p.src.At(pos), nil
}

// at reports whether the byte at pos is c.
func (p parser) at(pos int, c byte) bool { return pos < p.src.Len() && p.src.At(pos) == c }

// atEnd reports whether pos is at or past the end of the input.
func (p parser) atEnd(pos int) bool { return pos >= p.src.Len() }

// digits returns the offset of the first non-digit at or after pos.
func (p parser) digits(pos int) int {
	for pos < p.src.Len() && isDigit(p.src.At(pos)) {
		pos++
	}
	return pos
}

// keyword matches the exact text of word at pos, yielding v.
func (p parser) keyword(pos int, word string, v Value) (Value, int, *ParseError) {
	if mem.HasPrefix(p.src.SliceFrom(pos), mem.S(word)) {
		return v, pos + len(word), nil
	}
	return Value{}, pos, fail(LiteralMismatch, pos, "expected %q", word)
}

func (p parser) null(pos, _ int) (Value, int, *ParseError) { return p.keyword(pos, "null", Null()) }

// number parses a JSON number at pos:
//
//	number = [ "-" ] int [ frac ] [ exp ]
//	   int = "0" / ( digit1-9 *digit )
//	  frac = "." 1*digit
//	   exp = ( "e" / "E" ) [ "-" / "+" ] 1*digit
//
// It fails recoverably if the integer part has no digit. Once the integer
// part has been matched, a malformed fraction or exponent is fatal.
func (p parser) number(pos, _ int) (Value, int, *ParseError) {
	i := pos
	if p.at(i, '-') {
		i++
	}
	switch {
	case p.at(i, '0'):
		i++
	case i < p.src.Len() && isDigit(p.src.At(i)):
		i = p.digits(i)
	default:
		return Value{}, pos, fail(LiteralMismatch, i, "expected digit")
	}

	if p.at(i, '.') {
		j := p.digits(i + 1)
		if j == i+1 {
			return Value{}, j, within("number", fatal(StructuralViolation, j, "expected digit after decimal point"))
		}
		i = j
	}
	if p.at(i, 'e') || p.at(i, 'E') {
		j := i + 1
		if p.at(j, '+') || p.at(j, '-') {
			j++
		}
		k := p.digits(j)
		if k == j {
			return Value{}, k, within("number", fatal(StructuralViolation, k, "expected digit in exponent"))
		}
		i = k
	}

	// The text is well-formed, so the only possible error is a range error.
	// Values too small to represent round to zero; values too large fail.
	f, err := mem.ParseFloat(p.src.Slice(pos, i), 64)
	if err != nil && math.IsInf(f, 0) {
		return Value{}, pos, within("number", fatal(StructuralViolation, pos, "number out of range"))
	}
	return Number(f), i, nil
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
