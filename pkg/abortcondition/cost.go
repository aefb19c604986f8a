package abortcondition

import "github.com/atfgo/atf/pkg/tuningdata"

// Cost stops once the best valid cost recorded so far is at or below C.
// Progress has no meaningful definition in terms of a fraction, so it is
// always reported unknown.
type Cost struct {
	C tuningdata.Cost
}

func NewCost(c tuningdata.Cost) *Cost { return &Cost{C: c} }

func (c *Cost) Stop(td *tuningdata.TuningData) bool {
	best, ok := td.BestCost()
	return ok && best <= c.C
}

func (c *Cost) Progress(*tuningdata.TuningData) (float64, bool) { return 0, false }

func (c *Cost) Kind() string { return "Cost" }
