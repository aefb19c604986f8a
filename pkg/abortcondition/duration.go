package abortcondition

import (
	"time"

	"github.com/atfgo/atf/pkg/tuningdata"
	"github.com/atfgo/atf/pkg/utils"
)

// Duration stops once the run's wall-clock elapsed time reaches D.
type Duration struct {
	D time.Duration
}

func NewDuration(d time.Duration) *Duration { return &Duration{D: d} }

func (d *Duration) Stop(td *tuningdata.TuningData) bool {
	return td.TotalDuration() >= d.D
}

func (d *Duration) Progress(td *tuningdata.TuningData) (float64, bool) {
	if d.D <= 0 {
		return 1, true
	}
	p := float64(td.TotalDuration()) / float64(d.D)
	return utils.ClampFloat64(p, 0, 1), true
}

func (d *Duration) Kind() string { return "Duration" }
