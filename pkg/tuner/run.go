package tuner

import (
	"context"
	"errors"
	"fmt"

	"github.com/atfgo/atf/pkg/abortcondition"
	"github.com/atfgo/atf/pkg/param"
	"github.com/atfgo/atf/pkg/paramlog"
	"github.com/atfgo/atf/pkg/searchspace"
	"github.com/atfgo/atf/pkg/searchtechnique"
	"github.com/atfgo/atf/pkg/tuningdata"
)

func summarizeParams(params []param.Parameter) []tuningdata.ParameterSummary {
	out := make([]tuningdata.ParameterSummary, len(params))
	for i, p := range params {
		kind := "Set"
		if _, ok := p.Values.(param.Interval); ok {
			kind = "Interval"
		}
		out[i] = tuningdata.ParameterSummary{
			Name: p.Name, RangeKind: kind, Size: p.Values.Len(), HasConstraint: p.Constraint != nil,
		}
	}
	return out
}

// initializeLocked builds the search space (if not already supplied),
// picks a default search technique, and allocates TuningData. Callers must
// hold t.mu.
func (t *Tuner) initializeLocked() error {
	if t.state == stateRunning {
		return nil
	}
	if t.state == stateTerminated {
		return fmt.Errorf("tuner: cannot reuse a terminated tuner for a new run")
	}

	if t.searchSpace == nil {
		if len(t.params) == 0 {
			return &tuningdata.ConfigurationError{Reason: "no parameters or search space configured"}
		}
		sp, err := searchspace.New(t.params, searchspace.WithLogger(t.logger))
		if err != nil {
			return err
		}
		t.searchSpace = sp
	}

	if t.technique == nil && t.technique1D == nil {
		t.technique1D = searchtechnique.NewExhaustive()
	}

	var techniqueKind string
	if t.technique1D != nil {
		t.technique1D.Initialize(t.searchSpace.ConstrainedSize())
		techniqueKind = t.technique1D.Kind()
		t.costs1D = make(map[tuningdata.Index]tuningdata.Cost)
	} else {
		t.technique.Initialize(t.searchSpace.Dimensionality())
		techniqueKind = t.technique.Kind()
		t.costsD = make(map[tuningdata.CoordKey]tuningdata.Cost)
	}

	t.td = tuningdata.New(
		summarizeParams(t.params),
		t.searchSpace.ConstrainedSize(),
		t.searchSpace.UnconstrainedSize(),
		t.searchSpace.GenerationDuration(),
		techniqueKind,
		"",
		t.runID,
	)

	if t.logFile != "" {
		sink, err := paramlog.Open(t.logFile)
		if err != nil {
			return err
		}
		t.sink = sink
	}

	t.state = stateRunning
	return nil
}

// evaluate invokes the cost function, classifying its outcome: a nil error
// is a valid cost, an *InvalidConfigurationError is recorded with a penalty
// cost and does not stop the run, anything else is wrapped into a fatal
// *CostFunctionError and returned.
func (t *Tuner) evaluate(cfg tuningdata.Configuration) (tuningdata.Cost, bool, map[string]any, error) {
	cost, err := t.costFn(cfg)
	if err == nil {
		return cost, true, nil, nil
	}

	var invalidErr *tuningdata.InvalidConfigurationError
	if errors.As(err, &invalidErr) {
		penalty := tuningdata.Penalty
		if worst, ok := t.td.LargestValidCost(); ok {
			penalty = worst
		}
		return penalty, false, invalidErr.MetaData, nil
	}

	var cfErr *tuningdata.CostFunctionError
	if !errors.As(err, &cfErr) {
		cfErr = &tuningdata.CostFunctionError{Configuration: cfg, Err: err}
	}
	return 0, false, nil, cfErr
}

func (t *Tuner) logEvaluation() {
	if t.sink == nil {
		return
	}
	if last, ok := t.td.History.Last(); ok {
		if err := t.sink.WriteEvaluation(last); err != nil {
			t.logger.Warn("failed to write evaluation log line", "error", err)
		}
	}
}

// stepIndexSpace drives one proposal → evaluate → report cycle in index
// space. A technique may propose more than one index per step; each is
// mapped and evaluated independently, and the full set gets a cost or
// penalty reported back to the technique. A proposal with a prior valid
// recorded cost is not re-queried (its recorded cost is reported as-is); a
// proposal previously recorded as invalid is re-queried, since a penalty is
// not a "recorded cost" the technique should be stuck with forever.
func (t *Tuner) stepIndexSpace() error {
	proposals := t.technique1D.GetNextIndices()
	if len(proposals) == 0 {
		return fmt.Errorf("tuner: search technique %s produced no further proposals", t.technique1D.Kind())
	}
	for idx := range proposals {
		if cost, ok := t.td.RecordedValidCost(idx); ok {
			t.costs1D[idx] = cost
			continue
		}
		cfg, err := t.searchSpace.ConfigurationAt(idx)
		if err != nil {
			return err
		}
		// cfg is cloned before the cost function sees it so that a
		// CostFunction which mutates the map it was handed cannot corrupt
		// what History records.
		recorded := cfg.Clone()
		cost, valid, meta, err := t.evaluate(cfg)
		if err != nil {
			return err
		}
		t.td.RecordEvaluation(recorded, valid, cost, meta, nil, false, idx, true)
		t.costs1D[idx] = cost
		t.logEvaluation()
	}
	t.technique1D.ReportCosts(t.costs1D)
	t.costs1D = make(map[tuningdata.Index]tuningdata.Cost)
	return nil
}

// stepCoordinateSpace is stepIndexSpace's coordinate-space counterpart.
func (t *Tuner) stepCoordinateSpace() error {
	proposals := t.technique.GetNextCoordinates()
	if len(proposals) == 0 {
		return fmt.Errorf("tuner: search technique %s produced no further proposals", t.technique.Kind())
	}
	for key, coords := range proposals {
		if cost, ok := t.td.RecordedValidCostCoords(key); ok {
			t.costsD[key] = cost
			continue
		}
		cfg, err := t.searchSpace.ConfigurationAtCoordinates(coords)
		if err != nil {
			return err
		}
		recorded := cfg.Clone()
		cost, valid, meta, err := t.evaluate(cfg)
		if err != nil {
			return err
		}
		t.td.RecordEvaluation(recorded, valid, cost, meta, coords, true, 0, false)
		t.costsD[key] = cost
		t.logEvaluation()
	}
	t.technique.ReportCosts(t.costsD)
	t.costsD = make(map[tuningdata.CoordKey]tuningdata.Cost)
	return nil
}

func (t *Tuner) makeStepLocked(ctx context.Context, cost tuningdata.CostFunction) error {
	if err := t.initializeLocked(); err != nil {
		return err
	}
	if t.costFn == nil {
		t.costFn = cost
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.technique1D != nil {
		return t.stepIndexSpace()
	}
	return t.stepCoordinateSpace()
}

// MakeStep advances the run by one technique step, for callers that drive
// the tuning loop themselves (program-guided tuning): every configuration
// the technique proposes in that step is evaluated (proposals with a
// recorded valid cost are not re-evaluated) and the costs are reported back.
// The first call lazily initializes the run and binds it to cost; the cost
// argument of later calls is ignored.
func (t *Tuner) MakeStep(ctx context.Context, cost tuningdata.CostFunction) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.makeStepLocked(ctx, cost)
}

func (t *Tuner) finalizeLocked(terminatedEarly bool) {
	if t.technique1D != nil {
		t.technique1D.Finalize()
	} else if t.technique != nil {
		t.technique.Finalize()
	}
	t.td.RecordFinished(terminatedEarly)
	if t.sink != nil {
		_ = t.sink.Close()
	}
	t.state = stateTerminated
	if !t.silent {
		if cfg, ok := t.td.BestConfiguration(); ok {
			cost, _ := t.td.BestCost()
			t.logger.Info("tuning finished", "run_id", t.runID, "evaluations", t.td.NumEvaluated, "best_cost", cost, "best_configuration", cfg)
		} else {
			t.logger.Info("tuning finished with no valid configuration", "run_id", t.runID, "evaluations", t.td.NumEvaluated)
		}
	}
}

// Tune drives the orchestrator loop to completion: propose, evaluate,
// record, repeat until abort stops the run or the search space is
// exhausted. It returns the best configuration found, its cost, whether any
// valid configuration was found at all, the full TuningData, and a non-nil
// error if the run could not be initialized (e.g. the search space could not
// be built), the cost function failed fatally, the technique produced no
// further proposals, or ctx was cancelled.
func (t *Tuner) Tune(ctx context.Context, cost tuningdata.CostFunction, abort abortcondition.Condition) (tuningdata.Configuration, tuningdata.Cost, bool, *tuningdata.TuningData, error) {
	t.mu.Lock()
	if err := t.initializeLocked(); err != nil {
		t.mu.Unlock()
		return nil, 0, false, nil, err
	}
	t.costFn = cost
	if abort == nil {
		abort = abortcondition.NewEvaluations(t.searchSpace.ConstrainedSize())
	}
	t.td.AbortConditionKind = abort.Kind()
	t.mu.Unlock()

	var runErr error
	for {
		t.mu.Lock()
		exhausted := t.td.Exhausted(t.searchSpace.ConstrainedSize())
		stop := exhausted || abort.Stop(t.td)
		t.mu.Unlock()
		if stop {
			break
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		t.mu.Lock()
		err := t.makeStepLocked(ctx, cost)
		t.mu.Unlock()
		if err != nil {
			runErr = err
			break
		}
	}

	t.mu.Lock()
	t.finalizeLocked(runErr != nil)
	best, found := t.td.BestConfiguration()
	bestCost, _ := t.td.BestCost()
	td := t.td
	t.mu.Unlock()

	return best, bestCost, found, td, runErr
}
