// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jvalue/internal/escape"
	"go4.org/mem"
)

// ErrorKind classifies the failures reported by the parser.
// An ErrorKind is itself an error, so that
//
//	errors.Is(err, jvalue.TrailingInput)
//
// reports whether err is a *ParseError of that kind.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	_                   ErrorKind = iota
	LiteralMismatch               // expected keyword or punctuation absent
	StructuralViolation           // missing bracket, brace, or separator; trailing comma
	InvalidEscape                 // unrecognized or malformed escape sequence
	InvalidCodepoint              // escape or text that denotes no Unicode scalar value
	UnexpectedCharacter           // no value production begins with this character
	TrailingInput                 // input remains after a complete value
	NestingTooDeep                // containers nested past the depth limit
	UnexpectedEnd                 // end of input where a value was required
)

var kindStr = [...]string{
	LiteralMismatch:     "literal mismatch",
	StructuralViolation: "structural violation",
	InvalidEscape:       "invalid escape",
	InvalidCodepoint:    "invalid codepoint",
	UnexpectedCharacter: "unexpected character",
	TrailingInput:       "trailing input",
	NestingTooDeep:      "nesting too deep",
	UnexpectedEnd:       "unexpected end of input",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindStr) && kindStr[k] != "" {
		return kindStr[k]
	}
	return "unknown error kind " + strconv.Itoa(int(k))
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// ParseError is the concrete type of errors reported by the parser.
type ParseError struct {
	Kind     ErrorKind
	Location Location // where the failure occurred; Span covers Fragment
	Fragment string   // the offending source text, or "" at end of input
	Message  string   // a description of the failure

	// Context lists the grammar rules active at the point of failure,
	// innermost first, for example ["string", "array", "object"].
	Context []string

	// Fatal reports whether the failure occurred after a commitment point,
	// past which no alternative production is attempted.
	Fatal bool
}

// Offset returns the byte offset in the input where the failure occurred.
func (e *ParseError) Offset() int { return e.Location.Pos }

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "at %s: %s", e.Location.First, e.Message)
	if e.Fragment != "" {
		sb.WriteString(" near ")
		sb.WriteString(escape.Quote(mem.S(e.Fragment)))
	}
	if n := len(e.Context); n > maxContext {
		fmt.Fprintf(&sb, " [%s < ... %d more]", strings.Join(e.Context[:maxContext], " < "), n-maxContext)
	} else if n != 0 {
		fmt.Fprintf(&sb, " [%s]", strings.Join(e.Context, " < "))
	}
	return sb.String()
}

// Is reports whether target is the ErrorKind of e.
func (e *ParseError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// Snippet renders the line of src containing the failure with a caret under
// the failing column, along with up to one line of context before and after.
// The src must be the input that produced e.
//
//	2 | [1, 2,
//	3 | ]
//	  | ^
func (e *ParseError) Snippet(src []byte) string {
	lines := strings.Split(string(src), "\n")
	ln := min(max(e.Location.First.Line, 1), len(lines))
	lo, hi := max(ln-1, 1), min(ln+1, len(lines))
	width := len(strconv.Itoa(hi))

	var sb strings.Builder
	for i := lo; i <= hi; i++ {
		line := strings.TrimSuffix(lines[i-1], "\r")
		fmt.Fprintf(&sb, "%*d | %s\n", width, i, line)
		if i == ln {
			fmt.Fprintf(&sb, "%*s | %s^\n", width, "", caretPad(line, e.Location.First.Column))
		}
	}
	return sb.String()
}

// caretPad returns blank padding that lines up with byte offset col of line,
// preserving tabs so the caret stays aligned when rendered.
func caretPad(line string, col int) string {
	col = min(max(col, 0), len(line))
	var sb strings.Builder
	for _, r := range line[:col] {
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// fail constructs a recoverable failure of the given kind at offset pos.
// The location and fragment are filled in by finish.
func fail(kind ErrorKind, pos int, msg string, args ...any) *ParseError {
	return &ParseError{
		Kind:     kind,
		Location: Location{Span: Span{Pos: pos, End: pos}},
		Message:  fmt.Sprintf(msg, args...),
	}
}

// fatal constructs a failure of the given kind at offset pos that may not be
// retried as a different production.
func fatal(kind ErrorKind, pos int, msg string, args ...any) *ParseError {
	return cut(fail(kind, pos, msg, args...))
}

// cut promotes err, if it is not nil, to a fatal failure.
func cut(err *ParseError) *ParseError {
	if err != nil {
		err.Fatal = true
	}
	return err
}

// within records that err, if it is not nil, occurred inside the named rule.
func within(rule string, err *ParseError) *ParseError {
	if err != nil {
		err.Context = append(err.Context, rule)
	}
	return err
}

// maxContext is the maximum number of context rules rendered by Error.
const maxContext = 8

// maxFragment is the maximum length in bytes of a fragment reported in a
// ParseError.
const maxFragment = 16

// finish fills in the location and source fragment of err for src.
func finish(src mem.RO, err *ParseError) *ParseError {
	pos := min(err.Location.Pos, src.Len())
	end := pos
	switch err.Kind {
	case UnexpectedEnd:
		// No fragment at the end of the input.
	case UnexpectedCharacter, InvalidCodepoint:
		_, n := mem.DecodeRune(src.SliceFrom(pos))
		end += n
	default:
		end = fragmentEnd(src, pos)
	}
	err.Fragment = src.Slice(pos, end).StringCopy()
	err.Location = locateSpan(src, Span{Pos: pos, End: end})
	return err
}

// fragmentEnd returns the end offset of a fragment starting at pos, which
// stops at a line break or after maxFragment bytes, on a rune boundary.
func fragmentEnd(src mem.RO, pos int) int {
	rest := src.SliceFrom(pos)
	if rest.Len() > maxFragment {
		n := maxFragment
		for n > 0 && !utf8.RuneStart(rest.At(n)) {
			n--
		}
		rest = rest.SliceTo(n)
	}
	if i := mem.IndexByte(rest, '\n'); i >= 0 {
		rest = rest.SliceTo(i)
	}
	return pos + rest.Len()
}
