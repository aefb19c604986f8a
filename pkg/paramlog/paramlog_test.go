package paramlog

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/atfgo/atf/pkg/param"
	"github.com/atfgo/atf/pkg/tuningdata"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestWriteEvaluationAppendsOneJSONLinePerCall(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := NewWriter(nopCloser{buf})

	td := tuningdata.New(nil, 10, 10, 0, "Exhaustive", "Evaluations", "run")
	td.RecordEvaluation(tuningdata.Configuration{"A": param.Int(1)}, true, 3.5, nil, nil, false, 0, true)
	entry, ok := td.History.Last()
	if !ok {
		t.Fatal("expected a recorded history entry")
	}
	if err := sink.WriteEvaluation(entry); err != nil {
		t.Fatalf("WriteEvaluation: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one JSON line, got %d", len(lines))
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("failed to decode emitted JSON: %v", err)
	}
	if rec["valid"] != true {
		t.Errorf("valid = %v, want true", rec["valid"])
	}
	if rec["cost"].(float64) != 3.5 {
		t.Errorf("cost = %v, want 3.5", rec["cost"])
	}
}

func TestOpenTruncatesExistingFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "atf-log-*.jsonl")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	path := f.Name()
	if _, err := f.WriteString("stale content that should be discarded\n"); err != nil {
		t.Fatalf("failed to seed temp file: %v", err)
	}
	f.Close()

	sink, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer sink.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected Open to truncate the file, got %d leftover bytes", len(data))
	}
}

func TestWriteSummaryYAMLIncludesBestConfiguration(t *testing.T) {
	td := tuningdata.New(nil, 5, 5, 0, "Random", "Evaluations", "run-xyz")
	td.RecordEvaluation(tuningdata.Configuration{"A": param.Int(7)}, true, 2.0, nil, nil, false, 0, true)
	td.RecordFinished(false)

	var buf bytes.Buffer
	if err := WriteSummaryYAML(td, &buf); err != nil {
		t.Fatalf("WriteSummaryYAML: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "run_id: run-xyz") {
		t.Errorf("expected output to contain run_id, got:\n%s", out)
	}
	if !strings.Contains(out, "best_cost: 2") {
		t.Errorf("expected output to contain best_cost, got:\n%s", out)
	}
}
