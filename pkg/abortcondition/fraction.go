package abortcondition

import (
	"math"

	"github.com/atfgo/atf/pkg/tuningdata"
	"github.com/atfgo/atf/pkg/utils"
)

// Fraction stops once evaluations reach f * ConstrainedSize. f == 1.0 is
// equivalent to exhausting the whole search space via counted outcomes,
// matching Evaluations(ConstrainedSize) with the dedup rule the tuner
// already enforces.
type Fraction struct {
	F float64
}

func NewFraction(f float64) *Fraction { return &Fraction{F: f} }

func (fr *Fraction) threshold(td *tuningdata.TuningData) int64 {
	return int64(math.Ceil(fr.F * float64(td.ConstrainedSize)))
}

func (fr *Fraction) Stop(td *tuningdata.TuningData) bool {
	return td.NumEvaluated >= fr.threshold(td)
}

func (fr *Fraction) Progress(td *tuningdata.TuningData) (float64, bool) {
	t := fr.threshold(td)
	if t <= 0 {
		return 1, true
	}
	p := float64(td.NumEvaluated) / float64(t)
	return utils.ClampFloat64(p, 0, 1), true
}

func (fr *Fraction) Kind() string { return "Fraction" }

// ValidFraction stops once valid evaluations reach f * ConstrainedSize.
type ValidFraction struct {
	F float64
}

func NewValidFraction(f float64) *ValidFraction { return &ValidFraction{F: f} }

func (fr *ValidFraction) threshold(td *tuningdata.TuningData) int64 {
	return int64(math.Ceil(fr.F * float64(td.ConstrainedSize)))
}

func (fr *ValidFraction) Stop(td *tuningdata.TuningData) bool {
	return td.NumEvaluatedValid >= fr.threshold(td)
}

func (fr *ValidFraction) Progress(td *tuningdata.TuningData) (float64, bool) {
	t := fr.threshold(td)
	if t <= 0 {
		return 1, true
	}
	p := float64(td.NumEvaluatedValid) / float64(t)
	return utils.ClampFloat64(p, 0, 1), true
}

func (fr *ValidFraction) Kind() string { return "ValidFraction" }
