package tuningdata

import (
	"fmt"
	"math"
	"strconv"

	"github.com/atfgo/atf/pkg/param"
)

// Index addresses a configuration by its flat position in [0, |SP|).
type Index = int64

// Coordinates addresses a configuration by a point in (0,1]^D, one
// coordinate per parameter of the search space, in declaration order.
type Coordinates []float64

// CoordKey is the hashable form of Coordinates, needed because Go slices
// cannot be used as map keys the way pyatf uses hashable float tuples.
type CoordKey string

func (c Coordinates) Key() CoordKey {
	key := make([]byte, 0, len(c)*12)
	for i, v := range c {
		if i > 0 {
			key = append(key, ',')
		}
		key = strconv.AppendFloat(key, v, 'g', -1, 64)
	}
	return CoordKey(key)
}

// Configuration binds every declared parameter name to the value chosen
// for it.
type Configuration map[string]param.Value

func (c Configuration) Clone() Configuration {
	cp := make(Configuration, len(c))
	for k, v := range c {
		cp[k] = v
	}
	return cp
}

func (c Configuration) String() string {
	return fmt.Sprintf("%v", map[string]param.Value(c))
}

// Cost is the scalar objective value of a Configuration, lower is better.
type Cost = float64

// Penalty is injected as the recorded cost of a configuration that the cost
// function rejected as invalid, so that downstream min-seeking logic still
// has a well-ordered value to compare against. It is overridden at runtime
// by the largest valid cost observed so far once one exists.
var Penalty Cost = math.Inf(1)

// CostFunction evaluates one configuration, returning either its cost or an
// InvalidConfigurationError/CostFunctionError.
type CostFunction func(cfg Configuration) (Cost, error)
