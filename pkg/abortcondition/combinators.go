package abortcondition

import "github.com/atfgo/atf/pkg/tuningdata"

// And stops once every sub-condition has stopped. Progress is the minimum
// of the known sub-progresses; unknown if any sub-condition's progress is
// unknown.
type And struct {
	Conditions []Condition
}

func NewAnd(conditions ...Condition) *And { return &And{Conditions: conditions} }

func (a *And) Stop(td *tuningdata.TuningData) bool {
	for _, c := range a.Conditions {
		if !c.Stop(td) {
			return false
		}
	}
	return len(a.Conditions) > 0
}

func (a *And) Progress(td *tuningdata.TuningData) (float64, bool) {
	min := 1.0
	known := false
	for _, c := range a.Conditions {
		p, ok := c.Progress(td)
		if !ok {
			return 0, false
		}
		known = true
		if p < min {
			min = p
		}
	}
	return min, known
}

func (a *And) Kind() string { return "And" }

// Or stops once any sub-condition has stopped. Progress is the maximum of
// the known sub-progresses; unknown only if every sub-condition's progress
// is unknown.
type Or struct {
	Conditions []Condition
}

func NewOr(conditions ...Condition) *Or { return &Or{Conditions: conditions} }

func (o *Or) Stop(td *tuningdata.TuningData) bool {
	for _, c := range o.Conditions {
		if c.Stop(td) {
			return true
		}
	}
	return false
}

func (o *Or) Progress(td *tuningdata.TuningData) (float64, bool) {
	max := 0.0
	known := false
	for _, c := range o.Conditions {
		p, ok := c.Progress(td)
		if !ok {
			continue
		}
		known = true
		if p > max {
			max = p
		}
	}
	return max, known
}

func (o *Or) Kind() string { return "Or" }
