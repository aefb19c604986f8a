// Package tuner orchestrates a tuning run: it drives a search technique,
// maps its proposals to configurations via a search space, evaluates them
// with a caller-supplied cost function, and stops once an abort condition
// is satisfied.
package tuner

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/atfgo/atf/pkg/logger"
	"github.com/atfgo/atf/pkg/param"
	"github.com/atfgo/atf/pkg/paramlog"
	"github.com/atfgo/atf/pkg/searchspace"
	"github.com/atfgo/atf/pkg/searchtechnique"
	"github.com/atfgo/atf/pkg/tuningdata"
	"github.com/atfgo/atf/pkg/utils"
)

type state int

const (
	stateConfigured state = iota
	stateRunning
	stateTerminated
)

func (s state) String() string {
	switch s {
	case stateConfigured:
		return "Configured"
	case stateRunning:
		return "Running"
	case stateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Tuner is configured once via its builder methods and then driven through
// exactly one tuning run via Tune or a sequence of MakeStep calls. Guarded
// by a mutex the same way the teacher guards its Optimizer/Orchestrator,
// since TuningData() may be polled from another goroutine while a run is
// in progress.
type Tuner struct {
	mu sync.Mutex

	state state

	params      []param.Parameter
	searchSpace *searchspace.SearchSpace

	technique   searchtechnique.Technique
	technique1D searchtechnique.Technique1D

	silent  bool
	logFile string
	logger  *slog.Logger

	sink   *paramlog.Sink
	td     *tuningdata.TuningData
	runID  string
	costFn tuningdata.CostFunction

	costs1D map[tuningdata.Index]tuningdata.Cost
	costsD  map[tuningdata.CoordKey]tuningdata.Cost
}

// New returns a Tuner in the Configured state.
func New() *Tuner {
	return &Tuner{state: stateConfigured, logger: logger.Default, runID: utils.GenerateRunID()}
}

func (t *Tuner) checkConfigurable() error {
	if t.state != stateConfigured {
		return fmt.Errorf("tuner: cannot reconfigure a tuner in state %s", t.state)
	}
	return nil
}

// TuningParameters declares the parameters to build a search space from.
// Ignored if WithSearchSpace is used instead.
func (t *Tuner) TuningParameters(ps ...param.Parameter) *Tuner {
	if err := t.checkConfigurable(); err != nil {
		panic(err)
	}
	t.params = ps
	return t
}

// WithSearchSpace supplies an already-built search space, bypassing
// TuningParameters.
func (t *Tuner) WithSearchSpace(sp *searchspace.SearchSpace) *Tuner {
	if err := t.checkConfigurable(); err != nil {
		panic(err)
	}
	t.searchSpace = sp
	return t
}

// WithTechnique sets a coordinate-space search technique.
func (t *Tuner) WithTechnique(tech searchtechnique.Technique) *Tuner {
	if err := t.checkConfigurable(); err != nil {
		panic(err)
	}
	t.technique = tech
	t.technique1D = nil
	return t
}

// WithTechnique1D sets an index-space search technique.
func (t *Tuner) WithTechnique1D(tech searchtechnique.Technique1D) *Tuner {
	if err := t.checkConfigurable(); err != nil {
		panic(err)
	}
	t.technique1D = tech
	t.technique = nil
	return t
}

func (t *Tuner) Silent(b bool) *Tuner {
	t.silent = b
	return t
}

func (t *Tuner) LogFile(path string) *Tuner {
	t.logFile = path
	return t
}

func (t *Tuner) WithLogger(l *slog.Logger) *Tuner {
	t.logger = l
	return t
}

// State reports the tuner's position in the Configured -> Running ->
// Terminated state machine.
func (t *Tuner) State() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.String()
}

// TuningData returns the run's bookkeeping record. Valid once a run has
// been initialized (the first MakeStep or a call to Tune), even mid-run or
// after early termination.
func (t *Tuner) TuningData() (*tuningdata.TuningData, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.td == nil {
		return nil, fmt.Errorf("tuner: no tuning data yet, run has not started")
	}
	return t.td, nil
}
