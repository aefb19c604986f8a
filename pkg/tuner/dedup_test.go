package tuner

import (
	"context"
	"testing"

	"github.com/atfgo/atf/pkg/param"
	"github.com/atfgo/atf/pkg/tuningdata"
)

// revisitingIndices is a Technique1D stub that deliberately proposes the
// same index more than once per step, the way Random or a program-guided
// MakeStep loop could in practice, to exercise the orchestrator's dedup
// filtering rather than the dedup logic of any bundled technique.
type revisitingIndices struct {
	steps   [][]tuningdata.Index
	step    int
	reports []map[tuningdata.Index]tuningdata.Cost
}

func (r *revisitingIndices) Initialize(int64) {}
func (r *revisitingIndices) Finalize()        {}

func (r *revisitingIndices) GetNextIndices() map[tuningdata.Index]struct{} {
	if r.step >= len(r.steps) {
		return nil
	}
	out := make(map[tuningdata.Index]struct{}, len(r.steps[r.step]))
	for _, idx := range r.steps[r.step] {
		out[idx] = struct{}{}
	}
	r.step++
	return out
}

func (r *revisitingIndices) ReportCosts(costs map[tuningdata.Index]tuningdata.Cost) {
	cp := make(map[tuningdata.Index]tuningdata.Cost, len(costs))
	for k, v := range costs {
		cp[k] = v
	}
	r.reports = append(r.reports, cp)
}

func (r *revisitingIndices) Kind() string { return "revisitingIndices" }

func TestStepIndexSpaceSkipsAlreadyValidIndicesButStillReportsTheirCost(t *testing.T) {
	a := param.New("A", param.IntSet(1, 2, 3))
	tech := &revisitingIndices{steps: [][]tuningdata.Index{{0}, {0, 1}}}
	tn := New().TuningParameters(a).WithTechnique1D(tech).Silent(true)

	calls := 0
	cost := func(cfg tuningdata.Configuration) (tuningdata.Cost, error) {
		calls++
		return float64(cfg["A"].Int()), nil
	}

	if err := tn.MakeStep(context.Background(), cost); err != nil {
		t.Fatalf("step 1: unexpected error: %v", err)
	}
	if err := tn.MakeStep(context.Background(), cost); err != nil {
		t.Fatalf("step 2: unexpected error: %v", err)
	}

	if calls != 2 {
		t.Fatalf("cost function called %d times, want 2 (index 0 revisited in step 2 must not re-invoke it)", calls)
	}

	td, err := tn.TuningData()
	if err != nil {
		t.Fatalf("TuningData: %v", err)
	}
	if td.NumEvaluated != 2 {
		t.Fatalf("NumEvaluated = %d, want 2 (index 0's revisit must not be double-counted)", td.NumEvaluated)
	}
	if td.History.Len() != 2 {
		t.Fatalf("History has %d entries, want 2", td.History.Len())
	}

	// the second ReportCosts call must still include index 0's (unchanged)
	// cost alongside index 1's fresh cost, even though 0 was not re-evaluated.
	if len(tech.reports) != 2 {
		t.Fatalf("technique received %d ReportCosts calls, want 2", len(tech.reports))
	}
	second := tech.reports[1]
	if _, ok := second[0]; !ok {
		t.Fatalf("second ReportCosts call = %v, want it to still include index 0", second)
	}
	if _, ok := second[1]; !ok {
		t.Fatalf("second ReportCosts call = %v, want it to include index 1", second)
	}
}

func TestStepIndexSpaceRetriesPreviouslyInvalidIndex(t *testing.T) {
	a := param.New("A", param.IntSet(1, 2))
	tech := &revisitingIndices{steps: [][]tuningdata.Index{{0}, {0}}}
	tn := New().TuningParameters(a).WithTechnique1D(tech).Silent(true)

	calls := 0
	cost := func(cfg tuningdata.Configuration) (tuningdata.Cost, error) {
		calls++
		return 0, &tuningdata.InvalidConfigurationError{Configuration: cfg, Reason: "always invalid"}
	}

	if err := tn.MakeStep(context.Background(), cost); err != nil {
		t.Fatalf("step 1: unexpected error: %v", err)
	}
	if err := tn.MakeStep(context.Background(), cost); err != nil {
		t.Fatalf("step 2: unexpected error: %v", err)
	}

	if calls != 2 {
		t.Fatalf("cost function called %d times, want 2 (an invalid outcome must be re-queried, not skipped)", calls)
	}

	td, err := tn.TuningData()
	if err != nil {
		t.Fatalf("TuningData: %v", err)
	}
	if td.NumEvaluated != 2 {
		t.Fatalf("NumEvaluated = %d, want 2", td.NumEvaluated)
	}
	if td.NumEvaluatedInvalid != 2 {
		t.Fatalf("NumEvaluatedInvalid = %d, want 2", td.NumEvaluatedInvalid)
	}
}
