package demo

import (
	"errors"
	"testing"

	"github.com/atfgo/atf/pkg/param"
	"github.com/atfgo/atf/pkg/tuningdata"
	"github.com/atfgo/atf/pkg/utils"
)

func param1(v int64) param.Value { return param.Int(v) }

func TestParametersFormsTilingConstraint(t *testing.T) {
	params := Parameters()
	if len(params) != 2 {
		t.Fatalf("len(params) = %d, want 2", len(params))
	}
	ls := params[1]
	if ls.Constraint == nil {
		t.Fatal("expected LS to carry a constraint on WPT")
	}
	if !ls.Constraint.Predicate(map[string]param.Value{"WPT": param1(2), "LS": param1(3)}) {
		t.Fatal("expected WPT=2, LS=3 to satisfy the tiling constraint for N=12")
	}
	if ls.Constraint.Predicate(map[string]param.Value{"WPT": param1(5), "LS": param1(1)}) {
		t.Fatal("expected WPT=5 to be rejected since it does not divide N=12")
	}
}

func TestCostFunctionRejectsNonDivisibleConfigurations(t *testing.T) {
	cost := CostFunction(utils.NewRandSource(1))
	cfg := tuningdata.Configuration{
		"WPT": param1(5),
		"LS":  param1(1),
	}
	_, err := cost(cfg)
	if err == nil {
		t.Fatal("expected an error for WPT=5, which does not divide N=12")
	}
	var invalidErr *tuningdata.InvalidConfigurationError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected *tuningdata.InvalidConfigurationError, got %T", err)
	}
}

func TestCostFunctionAcceptsValidTiling(t *testing.T) {
	cost := CostFunction(utils.NewRandSource(1))
	cfg := tuningdata.Configuration{
		"WPT": param1(2),
		"LS":  param1(3),
	}
	c, err := cost(cfg)
	if err != nil {
		t.Fatalf("unexpected error for a valid tiling: %v", err)
	}
	if c <= 0 {
		t.Fatalf("cost = %v, want a positive value", c)
	}
}
