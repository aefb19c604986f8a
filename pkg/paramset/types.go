// Package paramset loads a declarative, constraint-free subset of the
// parameter model from YAML: the Set and Interval ranges that are directly
// expressible as static data. Parameters that need a Constraint or a
// Generator closure are still built programmatically with package param and
// merged in alongside whatever a File contributes.
package paramset

import "fmt"

// ParameterSpec is one YAML-declared parameter.
type ParameterSpec struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"` // "set" or "interval"
	Values []any  `yaml:"values,omitempty"`
	Start  any    `yaml:"start,omitempty"`
	End    any    `yaml:"end,omitempty"`
	Step   any    `yaml:"step,omitempty"`
}

// File is the top-level document: an ordered list of parameter
// declarations. Order matters, the same way it matters for
// param.Parameter: a later parameter's constraint (added programmatically
// after loading) may only depend on an earlier one.
type File struct {
	Specs []ParameterSpec `yaml:"parameters"`
}

func validate(f *File) error {
	if len(f.Specs) == 0 {
		return fmt.Errorf("paramset: at least one parameter must be declared")
	}
	seen := make(map[string]bool, len(f.Specs))
	for _, p := range f.Specs {
		if p.Name == "" {
			return fmt.Errorf("paramset: parameter name cannot be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("paramset: duplicate parameter name %q", p.Name)
		}
		seen[p.Name] = true

		switch p.Kind {
		case "set":
			if len(p.Values) == 0 {
				return fmt.Errorf("paramset: parameter %q: set kind requires at least one value", p.Name)
			}
		case "interval":
			if p.Start == nil || p.End == nil {
				return fmt.Errorf("paramset: parameter %q: interval kind requires start and end", p.Name)
			}
		default:
			return fmt.Errorf("paramset: parameter %q: invalid kind %q (must be set or interval)", p.Name, p.Kind)
		}
	}
	return nil
}
