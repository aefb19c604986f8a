// Package abortcondition provides the stopping-predicate abstraction a
// Tuner consults after every evaluation.
package abortcondition

import "github.com/atfgo/atf/pkg/tuningdata"

// Condition decides when a tuning run should stop. Progress reports a
// fraction in [0,1] towards stopping when known, and ok=false when the
// condition has no meaningful notion of progress (e.g. Cost).
type Condition interface {
	Stop(td *tuningdata.TuningData) bool
	Progress(td *tuningdata.TuningData) (fraction float64, ok bool)
	Kind() string
}
