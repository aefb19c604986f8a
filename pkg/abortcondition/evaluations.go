package abortcondition

import "github.com/atfgo/atf/pkg/tuningdata"

// Evaluations stops once N evaluations (valid or invalid) have run.
type Evaluations struct {
	N int64
}

func NewEvaluations(n int64) *Evaluations { return &Evaluations{N: n} }

func (e *Evaluations) Stop(td *tuningdata.TuningData) bool {
	return td.NumEvaluated >= e.N
}

func (e *Evaluations) Progress(td *tuningdata.TuningData) (float64, bool) {
	if e.N <= 0 {
		return 1, true
	}
	p := float64(td.NumEvaluated) / float64(e.N)
	if p > 1 {
		p = 1
	}
	return p, true
}

func (e *Evaluations) Kind() string { return "Evaluations" }

// ValidEvaluations stops once N valid evaluations have run.
type ValidEvaluations struct {
	N int64
}

func NewValidEvaluations(n int64) *ValidEvaluations { return &ValidEvaluations{N: n} }

func (v *ValidEvaluations) Stop(td *tuningdata.TuningData) bool {
	return td.NumEvaluatedValid >= v.N
}

func (v *ValidEvaluations) Progress(td *tuningdata.TuningData) (float64, bool) {
	if v.N <= 0 {
		return 1, true
	}
	p := float64(td.NumEvaluatedValid) / float64(v.N)
	if p > 1 {
		p = 1
	}
	return p, true
}

func (v *ValidEvaluations) Kind() string { return "ValidEvaluations" }
