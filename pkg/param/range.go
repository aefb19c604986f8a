package param

import "math"

// Range is an enumerable, indexable set of candidate values for a parameter.
// Mirrors pyatf's Range ABC (range.py): a Range only needs to answer "how
// many values" and "what is value i", everything else is built on top.
type Range interface {
	Len() int
	At(i int) Value
}

// Generator post-processes the raw numeric value produced by an Interval
// before it is handed to a constraint or cost function.
type Generator func(Value) Value

// Interval is an arithmetic progression start, start+step, ..., end
// (inclusive of end when it lands exactly on the step grid). Non-integral
// steps are supported by normalizing to an integer index internally, the
// same trick pyatf's Interval plays for float domains.
type Interval struct {
	start, end, step float64
	isFloat          bool
	numValues        int
	generator        Generator
}

// NewInterval builds an integer-stepped interval over [start, end].
func NewInterval(start, end, step int64, gen Generator) Interval {
	return newInterval(float64(start), float64(end), float64(step), false, gen)
}

// NewFloatInterval builds a real-valued interval over [start, end].
func NewFloatInterval(start, end, step float64, gen Generator) Interval {
	return newInterval(start, end, step, true, gen)
}

func newInterval(start, end, step float64, isFloat bool, gen Generator) Interval {
	if step == 0 {
		panic("param: interval step must not be zero")
	}
	iv := Interval{start: start, end: end, step: step, isFloat: isFloat, generator: gen}
	switch {
	case start == end:
		iv.numValues = 1
	case (step < 0 && start < end) || (step > 0 && start > end):
		iv.numValues = 0
	default:
		iv.numValues = int(math.Floor(math.Abs(end-start)/math.Abs(step))) + 1
	}
	return iv
}

func (iv Interval) Len() int { return iv.numValues }

func (iv Interval) At(i int) Value {
	if i < 0 || i >= iv.numValues {
		panic("param: interval index out of range")
	}
	raw := iv.start + float64(i)*iv.step
	if iv.isFloat {
		if iv.generator != nil {
			return iv.generator(Float(raw))
		}
		return Float(raw)
	}
	v := Int(int64(raw))
	if iv.generator != nil {
		return iv.generator(v)
	}
	return v
}

// Set is an explicitly enumerated, order-preserving list of values.
type Set struct {
	values []Value
}

func NewSet(values ...Value) Set {
	cp := make([]Value, len(values))
	copy(cp, values)
	return Set{values: cp}
}

func IntSet(values ...int64) Set {
	vs := make([]Value, len(values))
	for i, v := range values {
		vs[i] = Int(v)
	}
	return Set{values: vs}
}

func (s Set) Len() int { return len(s.values) }

func (s Set) At(i int) Value {
	if i < 0 || i >= len(s.values) {
		panic("param: set index out of range")
	}
	return s.values[i]
}
