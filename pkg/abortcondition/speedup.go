package abortcondition

import (
	"time"

	"github.com/atfgo/atf/pkg/tuningdata"
)

type speedupWindowKind int

const (
	windowDuration speedupWindowKind = iota
	windowEvaluations
	windowValidEvaluations
)

// Speedup stops once the cost has improved by at least MinSpeedup relative
// to its value one trailing window ago (the window is expressed as exactly
// one of a duration, an evaluation count, or a valid-evaluation count). If
// no improvement has ever been recorded, there is no baseline to measure a
// speedup against, so the condition degrades to stopping once the window
// has simply elapsed.
type Speedup struct {
	MinSpeedup float64
	kind       speedupWindowKind
	duration   time.Duration
	window     int64
}

func NewSpeedupByDuration(minSpeedup float64, window time.Duration) *Speedup {
	return &Speedup{MinSpeedup: minSpeedup, kind: windowDuration, duration: window}
}

func NewSpeedupByEvaluations(minSpeedup float64, window int64) *Speedup {
	return &Speedup{MinSpeedup: minSpeedup, kind: windowEvaluations, window: window}
}

func NewSpeedupByValidEvaluations(minSpeedup float64, window int64) *Speedup {
	return &Speedup{MinSpeedup: minSpeedup, kind: windowValidEvaluations, window: window}
}

// windowStartCost returns the cost that was current as of the window's
// opening, i.e. the most recent improvement at or before the window
// boundary; if every improvement lies inside the window, the first
// improvement's cost is returned instead. The bool is false only when no
// improvement has been recorded at all.
func (s *Speedup) windowStartCost(td *tuningdata.TuningData) (tuningdata.Cost, bool) {
	entries := td.ImprovementHistory.Entries()
	if len(entries) == 0 {
		return 0, false
	}
	var boundaryMarker int64
	switch s.kind {
	case windowDuration:
		boundaryMarker = int64(td.TotalDuration() - s.duration)
	case windowEvaluations:
		boundaryMarker = td.NumEvaluated - s.window
	case windowValidEvaluations:
		boundaryMarker = td.NumEvaluatedValid - s.window
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		var marker int64
		switch s.kind {
		case windowDuration:
			marker = int64(e.SinceTuningStart)
		case windowEvaluations:
			marker = e.Evaluations
		case windowValidEvaluations:
			marker = e.ValidEvaluations
		}
		if marker <= boundaryMarker {
			return e.Cost, true
		}
	}
	// every improvement happened inside the window; the first of them
	// serves as the baseline.
	return entries[0].Cost, true
}

func (s *Speedup) windowElapsed(td *tuningdata.TuningData) bool {
	switch s.kind {
	case windowDuration:
		return td.TotalDuration() >= s.duration
	case windowEvaluations:
		return td.NumEvaluated >= s.window
	case windowValidEvaluations:
		return td.NumEvaluatedValid >= s.window
	}
	return false
}

func (s *Speedup) Stop(td *tuningdata.TuningData) bool {
	best, ok := td.BestCost()
	if !ok {
		return false
	}
	start, ok := s.windowStartCost(td)
	if !ok {
		return s.windowElapsed(td)
	}
	if best <= 0 {
		return true
	}
	return start/best >= s.MinSpeedup
}

func (s *Speedup) Progress(*tuningdata.TuningData) (float64, bool) { return 0, false }

func (s *Speedup) Kind() string { return "Speedup" }
