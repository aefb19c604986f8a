package param

import "fmt"

// Kind identifies the dynamic type carried by a Value.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
)

// Value is a tagged union over the scalar types a tuning parameter can take.
// pyatf leaves parameter values as untyped Python objects; Go needs an
// explicit discriminant to keep Range/Parameter comparable and printable.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

func Int(v int64) Value    { return Value{kind: KindInt, i: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }
func String(v string) Value { return Value{kind: KindString, s: v} }
func Bool(v bool) Value     { return Value{kind: KindBool, b: v} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return int64(v.f)
	}
	return 0
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return float64(v.i)
	}
	return 0
}

func (v Value) String_() string { return v.s }
func (v Value) Bool() bool      { return v.b }

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindBool:
		return v.b == other.b
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return v.s
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	}
	return "<invalid>"
}
