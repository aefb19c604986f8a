package param

import "fmt"

// Dependency names an earlier parameter a Constraint reads from.
type Dependency = string

// Constraint gates which values of its own parameter are admissible given
// the currently bound values of the parameters it depends on. Depends must
// list every earlier parameter the predicate reads and must not contain the
// parameter's own name; the candidate value is always passed in args under
// the parameter's own name — pyatf discovers this set via reflection on the
// constraint closure's signature; Go has no equivalent introspection over
// closures, so the dependency set is declared explicitly.
type Constraint struct {
	Depends   []Dependency
	Predicate func(args map[string]Value) bool
}

// Parameter is a named tuning dimension: a candidate Range of values, and an
// optional Constraint restricting which values are admissible given earlier
// parameters in generation order.
type Parameter struct {
	Name       string
	Values     Range
	Constraint *Constraint
}

func New(name string, values Range) Parameter {
	return Parameter{Name: name, Values: values}
}

func (p Parameter) WithConstraint(c Constraint) Parameter {
	p.Constraint = &c
	return p
}

// Validate checks structural invariants that every Parameter must satisfy
// before a search space can be built from it.
func (p Parameter) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("param: parameter name must not be empty")
	}
	if p.Values == nil {
		return fmt.Errorf("param: parameter %q has no value range", p.Name)
	}
	if p.Constraint != nil && p.Constraint.Predicate == nil {
		return fmt.Errorf("param: parameter %q declares a constraint with no predicate", p.Name)
	}
	return nil
}
