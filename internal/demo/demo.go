// Package demo provides the toy tiling-parameter scenario exercised by
// cmd/atftune: a work-per-thread / local-size pair constrained to evenly
// divide a fixed problem size N, scored by a synthetic, noisy cost model.
// Not part of the public API.
package demo

import (
	"fmt"

	"github.com/atfgo/atf/pkg/param"
	"github.com/atfgo/atf/pkg/tuningdata"
	"github.com/atfgo/atf/pkg/utils"
)

// N is the fixed problem size: WPT must evenly divide it, and LS must evenly
// divide N/WPT, mirroring a simple OpenCL tiling scenario.
const N = 12

// Parameters returns the WPT/LS parameter pair, WPT unconstrained and LS
// constrained on WPT: LS must make (N/WPT) divisible by LS.
func Parameters() []param.Parameter {
	wpt := param.New("WPT", divisorsOf(N))
	ls := param.New("LS", divisorsOf(N)).WithConstraint(param.Constraint{
		Depends: []param.Dependency{"WPT"},
		Predicate: func(args map[string]param.Value) bool {
			wptVal := args["WPT"].Int()
			lsVal := args["LS"].Int()
			if wptVal == 0 || lsVal == 0 {
				return false
			}
			if N%wptVal != 0 {
				return false
			}
			return (N / wptVal) % lsVal == 0
		},
	})
	return []param.Parameter{wpt, ls}
}

func divisorsOf(n int64) param.Set {
	var vals []param.Value
	for d := int64(1); d <= n; d++ {
		if n%d == 0 {
			vals = append(vals, param.Int(d))
		}
	}
	return param.NewSet(vals...)
}

// CostFunction scores a WPT/LS configuration with a synthetic runtime model:
// the cost grows with the tile count N/WPT and with the local size LS,
// perturbed by measurement noise the way a real kernel benchmark would be. Configurations that fail the shared divisibility rule report
// InvalidConfigurationError instead of reusing the search space's own
// constraint, to demonstrate runtime-detected invalidity.
func CostFunction(rng *utils.RandSource) tuningdata.CostFunction {
	return func(cfg tuningdata.Configuration) (tuningdata.Cost, error) {
		wpt := cfg["WPT"].Int()
		ls := cfg["LS"].Int()
		if wpt <= 0 || ls <= 0 || N%wpt != 0 || (N/wpt)%ls != 0 {
			return 0, &tuningdata.InvalidConfigurationError{
				Configuration: cfg,
				Reason:        fmt.Sprintf("WPT=%d, LS=%d do not evenly tile N=%d", wpt, ls, N),
			}
		}
		tiles := float64(N) / float64(wpt)
		base := tiles*2.0 + float64(ls)*0.5
		noise := rng.NormFloat64(0, base*0.02)
		return base + noise, nil
	}
}
