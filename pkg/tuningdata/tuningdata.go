package tuningdata

import (
	"sync"
	"time"

	"github.com/atfgo/atf/pkg/utils"
)

// ParameterSummary is the serializable description of one declared
// parameter, recorded once at generation time (not per evaluation).
type ParameterSummary struct {
	Name           string
	RangeKind      string
	Size           int
	HasConstraint  bool
}

// TuningData is the bookkeeping record a tuning run accumulates: the
// declared search space, every evaluation, and the subsequence of strictly
// improving evaluations. Guarded by a RWMutex the same way the teacher
// guards its Optimizer/Orchestrator state, since a caller may read
// TuningData concurrently with an in-progress MakeStep.
type TuningData struct {
	mu sync.RWMutex

	Parameters         []ParameterSummary
	ConstrainedSize    int64
	UnconstrainedSize  int64
	GenerationDuration time.Duration
	TechniqueKind      string
	AbortConditionKind string
	RunID              string

	StartTime       time.Time
	TerminatedEarly bool
	finished        bool
	totalDuration   time.Duration

	History            History
	ImprovementHistory History

	NumEvaluated        int64
	NumEvaluatedValid   int64
	NumEvaluatedInvalid int64

	seenIndex  map[Index]bool
	seenCoords map[CoordKey]bool

	validIndexCost map[Index]Cost
	validCoordCost map[CoordKey]Cost
}

func New(params []ParameterSummary, constrainedSize, unconstrainedSize int64, genDuration time.Duration, techniqueKind, abortKind, runID string) *TuningData {
	return &TuningData{
		Parameters:         params,
		ConstrainedSize:    constrainedSize,
		UnconstrainedSize:  unconstrainedSize,
		GenerationDuration: genDuration,
		TechniqueKind:      techniqueKind,
		AbortConditionKind: abortKind,
		RunID:              runID,
		StartTime:          time.Now(),
		seenIndex:          make(map[Index]bool),
		seenCoords:         make(map[CoordKey]bool),
		validIndexCost:     make(map[Index]Cost),
		validCoordCost:     make(map[CoordKey]Cost),
	}
}

// HasOutcome reports whether this index has already been evaluated, with a
// valid or an invalid outcome. The orchestrator itself deduplicates through
// RecordedValidCost and detects whole-space exhaustion through Exhausted.
func (td *TuningData) HasOutcome(idx Index) bool {
	td.mu.RLock()
	defer td.mu.RUnlock()
	return td.seenIndex[idx]
}

func (td *TuningData) HasOutcomeCoords(key CoordKey) bool {
	td.mu.RLock()
	defer td.mu.RUnlock()
	return td.seenCoords[key]
}

// RecordedValidCost returns the cost previously recorded for idx, but only
// if that prior outcome was valid. A prior invalid outcome returns
// (0, false) so the orchestrator re-queries it rather than replaying the
// penalty, matching the "retried invalids may be re-queried" dedup rule.
func (td *TuningData) RecordedValidCost(idx Index) (Cost, bool) {
	td.mu.RLock()
	defer td.mu.RUnlock()
	c, ok := td.validIndexCost[idx]
	return c, ok
}

// RecordedValidCostCoords is RecordedValidCost for coordinate-space proposals.
func (td *TuningData) RecordedValidCostCoords(key CoordKey) (Cost, bool) {
	td.mu.RLock()
	defer td.mu.RUnlock()
	c, ok := td.validCoordCost[key]
	return c, ok
}

// RecordEvaluation appends one evaluation to History, and to
// ImprovementHistory iff it is valid and strictly improves on the best cost
// recorded so far (ties do not count as improvements, matching pyatf).
func (td *TuningData) RecordEvaluation(cfg Configuration, valid bool, cost Cost, metaData map[string]any, coords Coordinates, hasCoords bool, idx Index, hasIndex bool) {
	td.mu.Lock()
	defer td.mu.Unlock()

	td.NumEvaluated++
	if valid {
		td.NumEvaluatedValid++
	} else {
		td.NumEvaluatedInvalid++
	}
	if hasIndex {
		td.seenIndex[idx] = true
		if valid {
			td.validIndexCost[idx] = cost
		}
	}
	if hasCoords {
		td.seenCoords[coords.Key()] = true
		if valid {
			td.validCoordCost[coords.Key()] = cost
		}
	}

	entry := Entry{
		Timestamp:        time.Now(),
		SinceTuningStart: time.Since(td.StartTime),
		Evaluations:      td.NumEvaluated,
		ValidEvaluations: td.NumEvaluatedValid,
		Configuration:    cfg,
		Valid:            valid,
		Cost:             cost,
		MetaData:         metaData,
		Coordinates:      coords,
		HasCoordinates:   hasCoords,
		Index:            idx,
		HasIndex:         hasIndex,
	}
	td.History.Append(entry)

	if valid {
		last, ok := td.ImprovementHistory.Last()
		if !ok || cost < last.Cost {
			td.ImprovementHistory.Append(entry)
		}
	}
}

// RecordFinished freezes the run's total duration and early-termination flag.
func (td *TuningData) RecordFinished(terminatedEarly bool) {
	td.mu.Lock()
	defer td.mu.Unlock()
	if td.finished {
		return
	}
	td.finished = true
	td.TerminatedEarly = terminatedEarly
	td.totalDuration = time.Since(td.StartTime)
}

func (td *TuningData) TotalDuration() time.Duration {
	td.mu.RLock()
	defer td.mu.RUnlock()
	if td.finished {
		return td.totalDuration
	}
	return time.Since(td.StartTime)
}

// BestEntry returns the last (best) entry of ImprovementHistory.
func (td *TuningData) BestEntry() (Entry, bool) {
	td.mu.RLock()
	defer td.mu.RUnlock()
	return td.ImprovementHistory.Last()
}

func (td *TuningData) BestConfiguration() (Configuration, bool) {
	e, ok := td.BestEntry()
	if !ok {
		return nil, false
	}
	return e.Configuration, true
}

func (td *TuningData) BestCost() (Cost, bool) {
	e, ok := td.BestEntry()
	if !ok {
		return 0, false
	}
	return e.Cost, true
}

func (td *TuningData) BestIndex() (Index, bool) {
	e, ok := td.BestEntry()
	if !ok || !e.HasIndex {
		return 0, false
	}
	return e.Index, true
}

func (td *TuningData) BestCoordinates() (Coordinates, bool) {
	e, ok := td.BestEntry()
	if !ok || !e.HasCoordinates {
		return nil, false
	}
	return e.Coordinates, true
}

func (td *TuningData) BestTimestamp() (time.Time, bool) {
	e, ok := td.BestEntry()
	if !ok {
		return time.Time{}, false
	}
	return e.Timestamp, true
}

func (td *TuningData) DurationToBest() (time.Duration, bool) {
	e, ok := td.BestEntry()
	if !ok {
		return 0, false
	}
	return e.SinceTuningStart, true
}

func (td *TuningData) EvaluationsToBest() (int64, bool) {
	e, ok := td.BestEntry()
	if !ok {
		return 0, false
	}
	return e.Evaluations, true
}

// LargestValidCost scans recorded history for the worst (largest) valid
// cost seen so far, used to pick a finite penalty value once one exists.
func (td *TuningData) LargestValidCost() (Cost, bool) {
	td.mu.RLock()
	defer td.mu.RUnlock()
	found := false
	var worst Cost
	for _, e := range td.History.Entries() {
		if !e.Valid {
			continue
		}
		if !found || e.Cost > worst {
			worst = e.Cost
			found = true
		}
	}
	return worst, found
}

// validCostsLocked collects every valid recorded cost. Callers must hold mu.
func (td *TuningData) validCostsLocked() []float64 {
	costs := make([]float64, 0, len(td.History.Entries()))
	for _, e := range td.History.Entries() {
		if e.Valid {
			costs = append(costs, float64(e.Cost))
		}
	}
	return costs
}

// MeanValidCost returns the mean of every valid cost recorded so far.
func (td *TuningData) MeanValidCost() (float64, bool) {
	td.mu.RLock()
	defer td.mu.RUnlock()
	costs := td.validCostsLocked()
	if len(costs) == 0 {
		return 0, false
	}
	return utils.Mean(costs), true
}

// StdDevValidCost returns the standard deviation of every valid cost
// recorded so far, a spread measure useful for judging how noisy a cost
// function's valid outcomes are.
func (td *TuningData) StdDevValidCost() (float64, bool) {
	td.mu.RLock()
	defer td.mu.RUnlock()
	costs := td.validCostsLocked()
	if len(costs) == 0 {
		return 0, false
	}
	return utils.StdDev(costs), true
}

// Exhausted reports whether every point in a [0, size) index space or a
// coordinate space of the same size has already produced an outcome. A run
// only ever populates one of seenIndex/seenCoords, depending on whether its
// technique is index- or coordinate-based, so checking both covers either.
func (td *TuningData) Exhausted(size int64) bool {
	td.mu.RLock()
	defer td.mu.RUnlock()
	if size <= 0 {
		return false
	}
	return int64(len(td.seenIndex)) >= size || int64(len(td.seenCoords)) >= size
}
