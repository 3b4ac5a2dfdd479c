// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles the pieces of JSON string escapes that do not depend
// on parser state: escape designators, hexadecimal code units, and UTF-16
// surrogate arithmetic.
package escape

import "go4.org/mem"

// Surrogate ranges for UTF-16 code units.
const (
	surrHigh = 0xD800 // first high surrogate
	surrLow  = 0xDC00 // first low surrogate
	surrEnd  = 0xE000 // first code unit past the surrogates

	surrSelf = 0x10000 // first code point requiring a surrogate pair
)

var designators = [...]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// Designator reports the byte denoted by the single-character escape "\c".
// It reports false if c is not a single-character escape designator; note
// that this includes 'u', which introduces a Unicode escape.
func Designator(c byte) (byte, bool) {
	if int(c) < len(designators) {
		if b := designators[c]; b != 0 {
			return b, true
		}
	}
	return 0, false
}

// ParseHex4 decodes a 16-bit code unit from exactly four hexadecimal digits at
// the front of src. It reports false if src is too short or contains a byte
// that is not a hexadecimal digit.
func ParseHex4(src mem.RO) (uint16, bool) {
	if src.Len() < 4 {
		return 0, false
	}
	var v uint16
	for i := range 4 {
		b := src.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += uint16(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += uint16(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += uint16(b - 'A' + 10)
		} else {
			return 0, false
		}
	}
	return v, true
}

// IsSurrogate reports whether cp lies in the UTF-16 surrogate range.
func IsSurrogate(cp uint16) bool { return surrHigh <= cp && cp < surrEnd }

// IsHigh reports whether cp is a high (leading) surrogate.
func IsHigh(cp uint16) bool { return surrHigh <= cp && cp < surrLow }

// IsLow reports whether cp is a low (trailing) surrogate.
func IsLow(cp uint16) bool { return surrLow <= cp && cp < surrEnd }

// Combine joins a high and low surrogate into the code point they encode.
// The caller must ensure IsHigh(high) and IsLow(low).
func Combine(high, low uint16) rune {
	return (rune(high-surrHigh) << 10) + rune(low-surrLow) + surrSelf
}
