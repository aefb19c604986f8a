package searchtechnique

import (
	"sync"

	"github.com/atfgo/atf/pkg/tuningdata"
	"github.com/atfgo/atf/pkg/utils"
)

// Random is a Technique that proposes one uniformly random point in
// (0,1]^D per step. It never reuses the cost reports it is handed.
type Random struct {
	mu  sync.Mutex
	dim int
	rng *utils.RandSource
}

func NewRandom(rng *utils.RandSource) *Random {
	if rng == nil {
		rng = utils.NewRandSource(0)
	}
	return &Random{rng: rng}
}

func (r *Random) Initialize(dimensionality int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dim = dimensionality
}

func (r *Random) Finalize() {}

func (r *Random) GetNextCoordinates() map[tuningdata.CoordKey]tuningdata.Coordinates {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dim <= 0 {
		return nil
	}
	c := make(tuningdata.Coordinates, r.dim)
	for i := range c {
		// 1 - Float64() keeps the draw in (0,1], excluding the 0 that
		// Float64() alone could return.
		c[i] = 1.0 - r.rng.Float64()
	}
	return map[tuningdata.CoordKey]tuningdata.Coordinates{c.Key(): c}
}

func (r *Random) ReportCosts(map[tuningdata.CoordKey]tuningdata.Cost) {}

func (r *Random) Kind() string { return "Random" }
