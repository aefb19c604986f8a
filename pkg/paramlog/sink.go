// Package paramlog writes a tuning run's evaluation history to disk as it
// happens, and can dump a finished run's full bookkeeping as YAML.
package paramlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/atfgo/atf/pkg/tuningdata"
)

// evaluationRecord is the JSON Lines shape written per evaluation: one
// self-contained object per line, append-only.
type evaluationRecord struct {
	Timestamp     time.Time      `json:"timestamp"`
	Evaluations   int64          `json:"evaluations"`
	Valid         bool           `json:"valid"`
	Cost          *tuningdata.Cost `json:"cost,omitempty"`
	Configuration map[string]string `json:"configuration"`
	Index         *tuningdata.Index `json:"index,omitempty"`
	Coordinates   tuningdata.Coordinates `json:"coordinates,omitempty"`
	MetaData      map[string]any `json:"meta_data,omitempty"`
}

// Sink appends one JSON object per line for every evaluation recorded
// against it. Opening a Sink truncates any pre-existing file at path, the
// same way the teacher's flush_log rewrites its run log from scratch on
// each call, except a Sink writes incrementally instead of re-dumping the
// whole history every time.
type Sink struct {
	mu sync.Mutex
	w  io.WriteCloser
	enc *json.Encoder
}

func Open(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("paramlog: failed to open log file %s: %w", path, err)
	}
	return &Sink{w: f, enc: json.NewEncoder(f)}, nil
}

func NewWriter(w io.WriteCloser) *Sink {
	return &Sink{w: w, enc: json.NewEncoder(w)}
}

func (s *Sink) WriteEvaluation(e tuningdata.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := make(map[string]string, len(e.Configuration))
	for k, v := range e.Configuration {
		cfg[k] = v.String()
	}
	rec := evaluationRecord{
		Timestamp:     e.Timestamp,
		Evaluations:   e.Evaluations,
		Valid:         e.Valid,
		Configuration: cfg,
		MetaData:      e.MetaData,
	}
	if e.Valid {
		cost := e.Cost
		rec.Cost = &cost
	}
	if e.HasIndex {
		idx := e.Index
		rec.Index = &idx
	}
	if e.HasCoordinates {
		rec.Coordinates = e.Coordinates
	}
	return s.enc.Encode(rec)
}

func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Close()
}
