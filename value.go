// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
)

// Kind is the type of a JSON value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind   Kind = iota // the constant null
	StringKind             // a string
	BoolKind               // the constant true or false
	NumberKind             // a double-precision number
	ArrayKind              // an ordered sequence of values
	ObjectKind             // a mapping from strings to values
)

var kindName = [...]string{
	NullKind:   "null",
	StringKind: "string",
	BoolKind:   "bool",
	NumberKind: "number",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindName) {
		return kindName[k]
	}
	return "invalid kind " + strconv.Itoa(int(k))
}

// A Value is a JSON value: null, a string, a Boolean, a number, an array, or
// an object. The zero Value is null.
//
// A Value is immutable once constructed. The constructors copy their
// arguments, and the accessors do not expose the internal storage of arrays
// and objects, so no two values share structure.
type Value struct {
	kind Kind
	str  string
	num  float64
	ok   bool
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value with the given text.
func String(s string) Value { return Value{kind: StringKind, str: s} }

// Bool returns a Boolean value.
func Bool(b bool) Value { return Value{kind: BoolKind, ok: b} }

// Number returns a number value.
func Number(f float64) Value { return Value{kind: NumberKind, num: f} }

// Array returns an array value containing the given elements in order.
func Array(vs ...Value) Value { return Value{kind: ArrayKind, arr: slices.Clone(vs)} }

// Object returns an object value containing the given members.
func Object(m map[string]Value) Value {
	return Value{kind: ObjectKind, obj: maps.Clone(m)}
}

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == NullKind }

// Text returns the text of a string value. It reports false if v is not a
// string.
func (v Value) Text() (string, bool) { return v.str, v.kind == StringKind }

// Bool returns the truth value of a Boolean value. It reports false in its
// second result if v is not a Boolean.
func (v Value) Bool() (value, ok bool) { return v.ok, v.kind == BoolKind }

// Float64 returns the value of a number. It reports false if v is not a
// number.
func (v Value) Float64() (float64, bool) { return v.num, v.kind == NumberKind }

// Len returns the number of elements of an array or members of an object.
// It returns 0 for all other kinds.
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind:
		return len(v.arr)
	case ObjectKind:
		return len(v.obj)
	}
	return 0
}

// Index returns the element at offset i of an array. It panics if v is not an
// array or if i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != ArrayKind {
		panic(fmt.Sprintf("jvalue: Index of %v value", v.kind))
	}
	return v.arr[i]
}

// Get returns the value of the member of an object with the given key.
// It reports false if v is not an object or has no such member.
func (v Value) Get(key string) (Value, bool) {
	e, ok := v.obj[key]
	return e, ok
}

// Keys returns the keys of an object in ascending order. It returns nil for
// all other kinds.
func (v Value) Keys() []string { return slices.Sorted(maps.Keys(v.obj)) }

// Elements returns an iterator over the offsets and elements of an array.
// It yields nothing for other kinds.
func (v Value) Elements() iter.Seq2[int, Value] { return slices.All(v.arr) }

// Members returns an iterator over the keys and values of an object, in
// ascending order of key. It yields nothing for other kinds.
func (v Value) Members() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, key := range v.Keys() {
			if !yield(key, v.obj[key]) {
				return
			}
		}
	}
}

// Equal reports whether v and w have the same kind and structurally equal
// contents. Array order is significant; object member order is not.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case StringKind:
		return v.str == w.str
	case BoolKind:
		return v.ok == w.ok
	case NumberKind:
		return v.num == w.num
	case ArrayKind:
		return slices.EqualFunc(v.arr, w.arr, Value.Equal)
	case ObjectKind:
		return maps.EqualFunc(v.obj, w.obj, Value.Equal)
	}
	return true // null
}

// Interface converts v into plain Go values: nil for null, and otherwise
// string, bool, float64, []any, or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case StringKind:
		return v.str
	case BoolKind:
		return v.ok
	case NumberKind:
		return v.num
	case ArrayKind:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case ObjectKind:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Interface()
		}
		return out
	}
	return nil
}

// String returns a brief human-readable summary of v, for debugging.
// It is not a JSON encoding.
func (v Value) String() string {
	switch v.kind {
	case StringKind:
		return strconv.Quote(v.str)
	case BoolKind:
		return strconv.FormatBool(v.ok)
	case NumberKind:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case ArrayKind:
		return fmt.Sprintf("Array(len=%d)", len(v.arr))
	case ObjectKind:
		return fmt.Sprintf("Object(len=%d)", len(v.obj))
	}
	return "null"
}
