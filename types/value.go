// Package types defines the ATON data model: the Value tagged union, ordered
// Records and Datasets, inferred Schemas, the interning Dictionary, query ASTs,
// and streaming chunk metadata. Every other package builds on these types.
package types

import (
	"math"
	"strconv"
)

// Kind discriminates the variants of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// String returns the ATON schema type tag for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged union over every field value ATON can carry:
// null, bool, int, float, string, array, or object.
//
// Values are immutable once constructed; consumers switch exhaustively on
// Kind() rather than relying on runtime type tests. Numeric identity follows
// the source model: an Int and a Float holding the same number are equal, and
// whether a number is an Int is decided purely by integrality.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	a    []Value
	o    *Record
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a floating-point value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Number returns Int when f is integral and representable as int64, Float
// otherwise. This mirrors the source model where a single numeric type is
// split by the integrality test alone.
func Number(f float64) Value {
	if f == math.Trunc(f) && math.Abs(f) < 1<<63 {
		return Int(int64(f))
	}
	return Float(f)
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array returns an array value holding the given elements.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, a: elems}
}

// Object returns an object value wrapping the given record.
func Object(r *Record) Value {
	return Value{kind: KindObject, o: r}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; false when the value is not a bool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload; zero when the value is not an int.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload; zero when the value is not a float.
func (v Value) Float() float64 { return v.f }

// Str returns the string payload; empty when the value is not a string.
func (v Value) Str() string { return v.s }

// Arr returns the array payload; nil when the value is not an array.
func (v Value) Arr() []Value { return v.a }

// Obj returns the object payload; nil when the value is not an object.
func (v Value) Obj() *Record { return v.o }

// Num coerces the value to float64. The second return is false for
// non-numeric values.
func (v Value) Num() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Equal reports deep equality. Ints and Floats compare numerically, arrays
// compare elementwise, and objects compare field-by-field in order (field
// order is part of object identity, as it is for the wire format).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		// The only cross-kind equality is numeric.
		a, aok := v.Num()
		b, bok := other.Num()
		return aok && bok && a == b
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.a) != len(other.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(other.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.o.Equal(other.o)
	default:
		return false
	}
}

// GoString renders a compact debug representation.
func (v Value) GoString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	default:
		return string(v.AppendJSON(nil))
	}
}
