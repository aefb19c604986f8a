package tuningdata

import "fmt"

// ConfigurationError reports a structural problem with the parameters or
// search space supplied to a tuner, discovered before any evaluation runs.
// Modeled on the teacher's practice of custom error types (e.g.
// UnknownObjectiveError) rather than bare sentinel errors, so callers can
// carry structured context with errors.As.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tuningdata: invalid configuration setup: %s", e.Reason)
}

// EmptySearchSpaceError is returned when every constraint-satisfying path
// through a group's candidate tree has been pruned away, leaving zero
// admissible configurations. Distinct from ConfigurationError so callers can
// structurally separate "space pruned to empty" from other configuration
// problems (duplicate name, bad constraint reference) with errors.As.
type EmptySearchSpaceError struct {
	GroupParams []string
}

func (e *EmptySearchSpaceError) Error() string {
	return fmt.Sprintf("tuningdata: search space is empty for parameter group %v", e.GroupParams)
}

// ErrEmptySearchSpace builds an EmptySearchSpaceError for the given group.
func ErrEmptySearchSpace(groupParams []string) *EmptySearchSpaceError {
	return &EmptySearchSpaceError{GroupParams: groupParams}
}

// InvalidConfigurationError is returned by a CostFunction to reject a
// configuration without aborting the run: the tuner records a penalty cost
// and continues.
type InvalidConfigurationError struct {
	Configuration Configuration
	Reason        string
	MetaData      map[string]any
}

func (e *InvalidConfigurationError) Error() string {
	if e.Reason == "" {
		return "tuningdata: invalid configuration"
	}
	return fmt.Sprintf("tuningdata: invalid configuration: %s", e.Reason)
}

// CostFunctionError is returned by a CostFunction to report a fatal failure
// that should terminate the tuning run, as opposed to a configuration that
// is merely invalid. Mirrors pyatf's split between CostFunctionError (fatal,
// propagated) and the "invalid configuration" tag (recoverable, penalized).
type CostFunctionError struct {
	Configuration Configuration
	Err           error
	MetaData      map[string]any
}

func (e *CostFunctionError) Error() string {
	return fmt.Sprintf("tuningdata: cost function failed for %v: %v", e.Configuration, e.Err)
}

func (e *CostFunctionError) Unwrap() error { return e.Err }
