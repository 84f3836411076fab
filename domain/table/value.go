// Package table implements the small tidy-table model the rest of the module
// builds on: ordered columns, rows of nullable scalar values, and an optional
// key column (usually "well").
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the scalar type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

// Value is a nullable scalar cell. Missing measurements are Null values, not
// NaN sentinels; FloatValue converts NaN to Null at construction so NaN can
// never be stored.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Null returns the missing value.
func Null() Value { return Value{} }

func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue returns a float cell; NaN becomes Null.
func FloatValue(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindFloat, f: f}
}

func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// ValueOf converts an arbitrary scalar to a Value. Unrecognized types fall
// back to their fmt display form.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{}
	case Value:
		return x
	case bool:
		return BoolValue(x)
	case int:
		return IntValue(int64(x))
	case int8:
		return IntValue(int64(x))
	case int16:
		return IntValue(int64(x))
	case int32:
		return IntValue(int64(x))
	case int64:
		return IntValue(x)
	case uint:
		return IntValue(int64(x))
	case uint8:
		return IntValue(int64(x))
	case uint16:
		return IntValue(int64(x))
	case uint32:
		return IntValue(int64(x))
	case uint64:
		return IntValue(int64(x))
	case float32:
		return FloatValue(float64(x))
	case float64:
		return FloatValue(x)
	case string:
		return StringValue(x)
	case []byte:
		return StringValue(string(x))
	default:
		return StringValue(fmt.Sprintf("%v", v))
	}
}

// Kind returns the scalar type tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is missing.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean value; ok is false for any other kind.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Int64 returns the integer value; ok is false for any other kind.
func (v Value) Int64() (int64, bool) {
	return v.i, v.kind == KindInt
}

// Float64 returns the numeric value of a float or integer cell. For every
// other kind it returns NaN and false, which lets callers feed cells straight
// into float math.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return math.NaN(), false
	}
}

// Str returns the string value; ok is false for any other kind.
func (v Value) Str() (string, bool) {
	return v.s, v.kind == KindString
}

// Interface returns the value as nil, bool, int64, float64, or string.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	default:
		return nil
	}
}

// String returns the display form: empty for Null, minimal digits for
// numbers.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		return ""
	}
}

// Equal reports value equality. Int and Float cells compare numerically, so
// IntValue(5) equals FloatValue(5).
func (v Value) Equal(o Value) bool {
	if v.isNumeric() && o.isNumeric() {
		a, _ := v.Float64()
		b, _ := o.Float64()
		return a == b
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	default:
		return false
	}
}

// Compare orders values for deterministic grouping and sorting:
// Null < Bool < numbers < String, numbers compared numerically across Int and
// Float. Consistent with Equal.
func (v Value) Compare(o Value) int {
	vr, or := v.rank(), o.rank()
	if vr != or {
		if vr < or {
			return -1
		}
		return 1
	}
	switch {
	case v.kind == KindNull:
		return 0
	case v.kind == KindBool:
		if v.b == o.b {
			return 0
		}
		if !v.b {
			return -1
		}
		return 1
	case v.isNumeric():
		a, _ := v.Float64()
		b, _ := o.Float64()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	default:
		return strings.Compare(v.s, o.s)
	}
}

func (v Value) isNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

func (v Value) rank() int {
	switch v.kind {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindInt, KindFloat:
		return 2
	default:
		return 3
	}
}
