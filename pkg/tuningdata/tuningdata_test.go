package tuningdata

import (
	"math"
	"testing"

	"github.com/atfgo/atf/pkg/param"
)

func TestRecordEvaluationImprovementHistory(t *testing.T) {
	td := New(nil, 10, 10, 0, "Exhaustive", "Evaluations", "run-1")

	cfg := func(v int64) Configuration { return Configuration{"X": param.Int(v)} }

	td.RecordEvaluation(cfg(1), true, 10.0, nil, nil, false, 0, true)
	td.RecordEvaluation(cfg(2), true, 8.0, nil, nil, false, 1, true)
	td.RecordEvaluation(cfg(3), true, 9.0, nil, nil, false, 2, true) // not an improvement
	td.RecordEvaluation(cfg(4), false, 0, nil, nil, false, 3, true) // invalid, ignored
	td.RecordEvaluation(cfg(5), true, 8.0, nil, nil, false, 4, true) // tie, not strict improvement

	if td.NumEvaluated != 5 {
		t.Fatalf("NumEvaluated = %d, want 5", td.NumEvaluated)
	}
	if td.NumEvaluatedValid != 4 {
		t.Fatalf("NumEvaluatedValid = %d, want 4", td.NumEvaluatedValid)
	}
	if td.NumEvaluatedInvalid != 1 {
		t.Fatalf("NumEvaluatedInvalid = %d, want 1", td.NumEvaluatedInvalid)
	}

	best, ok := td.BestCost()
	if !ok || best != 8.0 {
		t.Fatalf("BestCost() = %v, %v, want 8.0, true", best, ok)
	}
	idx, ok := td.BestIndex()
	if !ok || idx != 1 {
		t.Fatalf("BestIndex() = %v, %v, want 1, true", idx, ok)
	}
	if td.ImprovementHistory.Len() != 2 {
		t.Fatalf("ImprovementHistory.Len() = %d, want 2 (initial improvement + strictly better one)", td.ImprovementHistory.Len())
	}
}

func TestExhausted(t *testing.T) {
	td := New(nil, 3, 3, 0, "Exhaustive", "Evaluations", "run-1")
	cfg := Configuration{"X": param.Int(1)}
	td.RecordEvaluation(cfg, true, 1.0, nil, nil, false, 0, true)
	if td.Exhausted(3) {
		t.Fatal("should not be exhausted after 1/3 indices")
	}
	td.RecordEvaluation(cfg, true, 1.0, nil, nil, false, 1, true)
	td.RecordEvaluation(cfg, true, 1.0, nil, nil, false, 2, true)
	if !td.Exhausted(3) {
		t.Fatal("should be exhausted after visiting every index")
	}
}

// TestExhaustedCoordinateSpace mirrors TestExhausted for a coordinate-space
// run (a Technique like Random), which only ever populates seenCoords, never
// seenIndex.
func TestExhaustedCoordinateSpace(t *testing.T) {
	td := New(nil, 3, 3, 0, "Random", "Evaluations", "run-1")
	cfg := Configuration{"X": param.Int(1)}
	td.RecordEvaluation(cfg, true, 1.0, nil, Coordinates{0.1}, true, 0, false)
	if td.Exhausted(3) {
		t.Fatal("should not be exhausted after 1/3 coordinates")
	}
	td.RecordEvaluation(cfg, true, 1.0, nil, Coordinates{0.5}, true, 0, false)
	td.RecordEvaluation(cfg, true, 1.0, nil, Coordinates{0.9}, true, 0, false)
	if !td.Exhausted(3) {
		t.Fatal("should be exhausted after visiting every coordinate")
	}
}

func TestLargestValidCost(t *testing.T) {
	td := New(nil, 3, 3, 0, "Exhaustive", "Evaluations", "run-1")
	cfg := Configuration{"X": param.Int(1)}
	if _, ok := td.LargestValidCost(); ok {
		t.Fatal("expected no largest valid cost on an empty run")
	}
	td.RecordEvaluation(cfg, true, 3.0, nil, nil, false, 0, true)
	td.RecordEvaluation(cfg, true, 7.0, nil, nil, false, 1, true)
	td.RecordEvaluation(cfg, false, 0, nil, nil, false, 2, true)
	worst, ok := td.LargestValidCost()
	if !ok || worst != 7.0 {
		t.Fatalf("LargestValidCost() = %v, %v, want 7.0, true", worst, ok)
	}
}

func TestBestDerivedQueriesIndexSpace(t *testing.T) {
	td := New(nil, 5, 5, 0, "Exhaustive", "Evaluations", "run-1")
	cfg := Configuration{"X": param.Int(1)}

	if _, ok := td.EvaluationsToBest(); ok {
		t.Fatal("expected no EvaluationsToBest on an empty run")
	}
	if _, ok := td.DurationToBest(); ok {
		t.Fatal("expected no DurationToBest on an empty run")
	}
	if _, ok := td.BestTimestamp(); ok {
		t.Fatal("expected no BestTimestamp on an empty run")
	}
	if _, ok := td.BestCoordinates(); ok {
		t.Fatal("expected no BestCoordinates on an index-space run")
	}

	td.RecordEvaluation(cfg, true, 5.0, nil, nil, false, 0, true)
	td.RecordEvaluation(cfg, true, 3.0, nil, nil, false, 1, true) // the improving evaluation

	evals, ok := td.EvaluationsToBest()
	if !ok || evals != 2 {
		t.Fatalf("EvaluationsToBest() = %v, %v, want 2, true", evals, ok)
	}
	if _, ok := td.DurationToBest(); !ok {
		t.Fatal("expected a DurationToBest once a best entry exists")
	}
	if _, ok := td.BestTimestamp(); !ok {
		t.Fatal("expected a BestTimestamp once a best entry exists")
	}
	// this run was driven through index space, not coordinate space, so
	// there is still no coordinate to report even with a best entry.
	if _, ok := td.BestCoordinates(); ok {
		t.Fatal("expected no BestCoordinates for an index-space run")
	}
}

func TestBestCoordinatesInCoordinateSpace(t *testing.T) {
	td := New(nil, 5, 5, 0, "Random", "Evaluations", "run-1")
	cfg := Configuration{"X": param.Int(1)}
	coords := Coordinates{0.5, 0.9}

	td.RecordEvaluation(cfg, true, 1.0, nil, coords, true, 0, false)

	got, ok := td.BestCoordinates()
	if !ok || len(got) != 2 || got[0] != 0.5 || got[1] != 0.9 {
		t.Fatalf("BestCoordinates() = %v, %v, want %v, true", got, ok, coords)
	}
}

func TestHasOutcomeCoords(t *testing.T) {
	td := New(nil, 5, 5, 0, "Random", "Evaluations", "run-1")
	coords := Coordinates{0.2, 0.4}
	key := coords.Key()

	if td.HasOutcomeCoords(key) {
		t.Fatal("expected no outcome recorded yet")
	}
	td.RecordEvaluation(Configuration{"X": param.Int(1)}, true, 1.0, nil, coords, true, 0, false)
	if !td.HasOutcomeCoords(key) {
		t.Fatal("expected the coordinate key to be recorded as seen")
	}
}

func TestMeanAndStdDevValidCost(t *testing.T) {
	td := New(nil, 4, 4, 0, "Exhaustive", "Evaluations", "run-1")
	cfg := Configuration{"X": param.Int(1)}

	if _, ok := td.MeanValidCost(); ok {
		t.Fatal("expected no mean valid cost on an empty run")
	}
	if _, ok := td.StdDevValidCost(); ok {
		t.Fatal("expected no stddev valid cost on an empty run")
	}

	td.RecordEvaluation(cfg, true, 2.0, nil, nil, false, 0, true)
	td.RecordEvaluation(cfg, true, 4.0, nil, nil, false, 1, true)
	td.RecordEvaluation(cfg, false, 0, nil, nil, false, 2, true) // invalid, excluded
	td.RecordEvaluation(cfg, true, 6.0, nil, nil, false, 3, true)

	mean, ok := td.MeanValidCost()
	if !ok || mean != 4.0 {
		t.Fatalf("MeanValidCost() = %v, %v, want 4.0, true", mean, ok)
	}
	stddev, ok := td.StdDevValidCost()
	if !ok {
		t.Fatal("expected a stddev once valid costs exist")
	}
	// population variance of {2, 4, 6} around mean 4 is ((2^2)+(0^2)+(2^2))/3
	// = 8/3, so stddev = sqrt(8/3).
	want := math.Sqrt(8.0 / 3.0)
	if math.Abs(stddev-want) > 1e-9 {
		t.Fatalf("StdDevValidCost() = %v, want %v", stddev, want)
	}
}
