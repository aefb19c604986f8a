package paramset

import (
	"fmt"

	"github.com/atfgo/atf/pkg/param"
)

// Parameters converts every declared spec into a param.Parameter with no
// constraint attached. Callers needing constraints add them afterwards via
// param.Parameter.WithConstraint before handing the result to a search
// space; File only ever describes the unconstrained shape of a parameter.
func (f *File) Parameters() ([]param.Parameter, error) {
	out := make([]param.Parameter, 0, len(f.Specs))
	for _, spec := range f.Specs {
		p, err := spec.toParameter()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (spec ParameterSpec) toParameter() (param.Parameter, error) {
	switch spec.Kind {
	case "set":
		values := make([]param.Value, 0, len(spec.Values))
		for _, raw := range spec.Values {
			values = append(values, toValue(raw))
		}
		return param.New(spec.Name, param.NewSet(values...)), nil
	case "interval":
		start, startIsFloat := toNumber(spec.Start)
		end, endIsFloat := toNumber(spec.End)
		step := 1.0
		stepIsFloat := false
		if spec.Step != nil {
			step, stepIsFloat = toNumber(spec.Step)
		}
		if startIsFloat || endIsFloat || stepIsFloat {
			return param.New(spec.Name, param.NewFloatInterval(start, end, step, nil)), nil
		}
		return param.New(spec.Name, param.NewInterval(int64(start), int64(end), int64(step), nil)), nil
	default:
		return param.Parameter{}, fmt.Errorf("paramset: parameter %q: unsupported kind %q", spec.Name, spec.Kind)
	}
}

func toValue(raw any) param.Value {
	switch v := raw.(type) {
	case int:
		return param.Int(int64(v))
	case int64:
		return param.Int(v)
	case float64:
		return param.Float(v)
	case string:
		return param.String(v)
	case bool:
		return param.Bool(v)
	default:
		return param.String(fmt.Sprintf("%v", v))
	}
}

func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), false
	case int64:
		return float64(v), false
	case float64:
		return v, true
	default:
		return 0, false
	}
}
