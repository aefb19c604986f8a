// Package searchtechnique defines the pluggable proposal strategies a
// Tuner drives: Technique works in continuous coordinate space, Technique1D
// works directly in the flat index space of a search space.
package searchtechnique

import "github.com/atfgo/atf/pkg/tuningdata"

// Technique proposes points in (0,1]^D and consumes the costs observed for
// previously proposed points. The proposal set per step is technique-defined
// and may contain more than one point; it is keyed by CoordKey so the
// orchestrator can report costs back against the exact points proposed.
type Technique interface {
	Initialize(dimensionality int)
	Finalize()
	GetNextCoordinates() map[tuningdata.CoordKey]tuningdata.Coordinates
	ReportCosts(costs map[tuningdata.CoordKey]tuningdata.Cost)
	Kind() string
}

// Technique1D proposes indices directly in [0, searchSpaceSize). The
// proposal set per step is technique-defined and may contain more than one
// index.
type Technique1D interface {
	Initialize(searchSpaceSize int64)
	Finalize()
	GetNextIndices() map[tuningdata.Index]struct{}
	ReportCosts(costs map[tuningdata.Index]tuningdata.Cost)
	Kind() string
}
