package paramlog

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/atfgo/atf/pkg/tuningdata"
	"github.com/atfgo/atf/pkg/utils"
)

// summaryDoc is the YAML-serializable snapshot of a finished (or
// in-progress) tuning run, grounded in the teacher's config.MarshalScenario
// pattern of marshaling a fully-populated struct with yaml tags rather than
// building a map by hand.
type summaryDoc struct {
	RunID               string  `yaml:"run_id"`
	ConstrainedSize     int64   `yaml:"constrained_size"`
	UnconstrainedSize   int64   `yaml:"unconstrained_size"`
	TechniqueKind       string  `yaml:"technique"`
	AbortConditionKind  string  `yaml:"abort_condition"`
	Evaluations         int64   `yaml:"evaluations"`
	ValidEvaluations    int64   `yaml:"valid_evaluations"`
	InvalidEvaluations  int64   `yaml:"invalid_evaluations"`
	TerminatedEarly     bool    `yaml:"terminated_early"`
	BestCost            *float64 `yaml:"best_cost,omitempty"`
	MeanValidCost       *float64 `yaml:"mean_valid_cost,omitempty"`
	StdDevValidCost     *float64 `yaml:"stddev_valid_cost,omitempty"`
	BestConfiguration   map[string]string `yaml:"best_configuration,omitempty"`
}

// WriteSummaryYAML dumps a human-readable snapshot of td to w.
func WriteSummaryYAML(td *tuningdata.TuningData, w io.Writer) error {
	doc := summaryDoc{
		RunID:              td.RunID,
		ConstrainedSize:    td.ConstrainedSize,
		UnconstrainedSize:  td.UnconstrainedSize,
		TechniqueKind:      td.TechniqueKind,
		AbortConditionKind: td.AbortConditionKind,
		Evaluations:        td.NumEvaluated,
		ValidEvaluations:   td.NumEvaluatedValid,
		InvalidEvaluations: td.NumEvaluatedInvalid,
		TerminatedEarly:    td.TerminatedEarly,
	}
	if cost, ok := td.BestCost(); ok {
		rounded := utils.Round(cost, 6)
		doc.BestCost = &rounded
	}
	if mean, ok := td.MeanValidCost(); ok {
		rounded := utils.Round(mean, 6)
		doc.MeanValidCost = &rounded
	}
	if stddev, ok := td.StdDevValidCost(); ok {
		rounded := utils.Round(stddev, 6)
		doc.StdDevValidCost = &rounded
	}
	if cfg, ok := td.BestConfiguration(); ok {
		m := make(map[string]string, len(cfg))
		for k, v := range cfg {
			m[k] = v.String()
		}
		doc.BestConfiguration = m
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}
