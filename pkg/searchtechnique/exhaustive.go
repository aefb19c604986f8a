package searchtechnique

import (
	"sync"

	"github.com/atfgo/atf/pkg/tuningdata"
)

// Exhaustive is a Technique1D that walks every index in ascending order,
// wrapping back to zero once the space has been covered once.
type Exhaustive struct {
	mu   sync.Mutex
	size int64
	next tuningdata.Index
}

func NewExhaustive() *Exhaustive {
	return &Exhaustive{}
}

func (e *Exhaustive) Initialize(searchSpaceSize int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.size = searchSpaceSize
	e.next = 0
}

func (e *Exhaustive) Finalize() {}

func (e *Exhaustive) GetNextIndices() map[tuningdata.Index]struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.size <= 0 {
		return nil
	}
	idx := e.next
	e.next++
	if e.next >= e.size {
		e.next = 0
	}
	return map[tuningdata.Index]struct{}{idx: {}}
}

func (e *Exhaustive) ReportCosts(map[tuningdata.Index]tuningdata.Cost) {}

func (e *Exhaustive) Kind() string { return "Exhaustive" }
