package searchspace

import (
	"log/slog"
	"time"

	"github.com/atfgo/atf/pkg/param"
	"github.com/atfgo/atf/pkg/tuningdata"
)

// SearchSpace is the constraint-pruned, chain-of-trees representation of a
// parameter set: the bijective mapping between a flat Index or a
// Coordinates point and a Configuration.
type SearchSpace struct {
	params            []param.Parameter
	cot               ChainOfTrees
	constrainedSize   int64
	unconstrainedSize int64
	genDuration       time.Duration
}

type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger enables debug-level progress logging while the tree is built.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New builds a SearchSpace from a declaration-ordered list of parameters.
// Parameters with a Constraint may only depend on parameters declared
// earlier in the list. Returns a *tuningdata.ConfigurationError if any
// parameter is invalid or references an unknown/later parameter, and a
// *tuningdata.EmptySearchSpaceError if any independent group's tree has zero
// leaves.
func New(params []param.Parameter, opts ...Option) (*SearchSpace, error) {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, p := range params {
		if err := p.Validate(); err != nil {
			return nil, &tuningdata.ConfigurationError{Reason: err.Error()}
		}
	}

	start := time.Now()
	cot, err := buildChainOfTrees(params)
	if err != nil {
		return nil, &tuningdata.ConfigurationError{Reason: err.Error()}
	}
	duration := time.Since(start)

	constrainedSize := int64(1)
	unconstrainedSize := int64(1)
	for _, p := range params {
		unconstrainedSize *= int64(p.Values.Len())
	}
	for i, tree := range cot {
		if tree.Root.NumLeaves == 0 {
			return nil, tuningdata.ErrEmptySearchSpace(tree.ParamNames)
		}
		constrainedSize *= tree.Root.NumLeaves
		if cfg.logger != nil {
			cfg.logger.Debug("search space group built",
				"group", i, "params", tree.ParamNames, "leaves", tree.Root.NumLeaves)
		}
	}

	return &SearchSpace{
		params:            params,
		cot:               cot,
		constrainedSize:   constrainedSize,
		unconstrainedSize: unconstrainedSize,
		genDuration:       duration,
	}, nil
}

func (sp *SearchSpace) ConstrainedSize() int64   { return sp.constrainedSize }
func (sp *SearchSpace) UnconstrainedSize() int64 { return sp.unconstrainedSize }
func (sp *SearchSpace) GenerationDuration() time.Duration { return sp.genDuration }

// Dimensionality returns D, the number of parameters, i.e. the number of
// coordinates a coordinate-space search technique must produce: one per
// parameter, not one per independent group.
func (sp *SearchSpace) Dimensionality() int { return len(sp.params) }

func (sp *SearchSpace) ParameterNames() []string {
	names := make([]string, 0, len(sp.params))
	for _, p := range sp.params {
		names = append(names, p.Name)
	}
	return names
}

func (sp *SearchSpace) Groups() ChainOfTrees { return sp.cot }

// ConfigurationAt maps a flat index in [0, ConstrainedSize()) to the
// configuration it denotes via mixed-radix decomposition across groups. The
// first-declared group is the most significant digit (slowest-changing),
// matching pyatf's get_configuration index path: groups are walked in
// reverse, so the digit computed against the largest accumulated divisor is
// the first-declared group's.
func (sp *SearchSpace) ConfigurationAt(idx tuningdata.Index) (tuningdata.Configuration, error) {
	if idx < 0 || idx >= sp.constrainedSize {
		return nil, &tuningdata.ConfigurationError{Reason: "index out of range"}
	}
	cfg := make(tuningdata.Configuration, len(sp.params))
	remaining := idx
	for i := len(sp.cot) - 1; i >= 0; i-- {
		tree := sp.cot[i]
		radix := tree.Root.NumLeaves
		local := remaining % radix
		remaining /= radix
		descendByIndex(tree.Root, local, tree.ParamNames, cfg)
	}
	return cfg, nil
}

// ConfigurationAtCoordinates maps a Coordinates point in (0,1]^D to the
// configuration it denotes. D is the number of parameters, not the number
// of groups: one coordinate is consumed per parameter, and within a group's
// tree each level is descended using its own coordinate, selecting the
// child whose leaf-weighted span that coordinate falls into.
func (sp *SearchSpace) ConfigurationAtCoordinates(c tuningdata.Coordinates) (tuningdata.Configuration, error) {
	if len(c) != len(sp.params) {
		return nil, &tuningdata.ConfigurationError{Reason: "coordinate dimensionality mismatch"}
	}
	cfg := make(tuningdata.Configuration, len(sp.params))
	offset := 0
	for _, tree := range sp.cot {
		n := len(tree.ParamNames)
		coords := c[offset : offset+n]
		if err := descendByCoordinates(tree.Root, coords, tree.ParamNames, cfg); err != nil {
			return nil, err
		}
		offset += n
	}
	return cfg, nil
}

// IndexOf is the inverse of ConfigurationAt, used by round-trip tests. It
// returns false if cfg does not correspond to any admissible configuration.
// Groups are walked in the same reverse order as ConfigurationAt so the
// first-declared group accumulates the largest multiplier, i.e. is the most
// significant digit.
func (sp *SearchSpace) IndexOf(cfg tuningdata.Configuration) (tuningdata.Index, bool) {
	var idx tuningdata.Index
	multiplier := tuningdata.Index(1)
	for i := len(sp.cot) - 1; i >= 0; i-- {
		tree := sp.cot[i]
		local, ok := leafIndexOf(tree.Root, tree.ParamNames, cfg, 0)
		if !ok {
			return 0, false
		}
		idx += tuningdata.Index(local) * multiplier
		multiplier *= tree.Root.NumLeaves
	}
	return idx, true
}

// descendByCoordinates walks from node down to a leaf, consuming one
// coordinate per level: at each level the coordinate selects the child
// whose cumulative leaf span it falls into, the same weighted walk pyatf's
// get_configuration performs for a tree not stored as a flat range.
func descendByCoordinates(node *Node, coords []float64, names []string, cfg tuningdata.Configuration) error {
	depth := 0
	for len(node.Children) > 0 {
		coord := coords[depth]
		if coord <= 0 || coord > 1 {
			return &tuningdata.ConfigurationError{Reason: "coordinate out of (0,1] range"}
		}
		threshold := coord * float64(node.NumLeaves)
		var leftLeaves int64
		var selected *Node
		for _, child := range node.Children {
			if float64(leftLeaves) < threshold && threshold <= float64(leftLeaves+child.NumLeaves) {
				selected = child
				break
			}
			leftLeaves += child.NumLeaves
		}
		if selected == nil {
			selected = node.Children[len(node.Children)-1]
		}
		cfg[names[depth]] = selected.Value
		node = selected
		depth++
	}
	return nil
}

// descendByIndex walks from node down to the leaf at local position idx
// (within [0, node.NumLeaves)), binding every parameter value visited along
// the way into cfg.
func descendByIndex(node *Node, idx int64, names []string, cfg tuningdata.Configuration) {
	depth := 0
	for len(node.Children) > 0 {
		for _, child := range node.Children {
			if idx < child.NumLeaves {
				cfg[names[depth]] = child.Value
				node = child
				depth++
				break
			}
			idx -= child.NumLeaves
		}
	}
}

func leafIndexOf(node *Node, names []string, cfg tuningdata.Configuration, depth int) (int64, bool) {
	if len(node.Children) == 0 {
		return 0, true
	}
	name := names[depth]
	want, ok := cfg[name]
	if !ok {
		return 0, false
	}
	var offset int64
	for _, child := range node.Children {
		if child.Value.Equal(want) {
			rest, ok := leafIndexOf(child, names, cfg, depth+1)
			if !ok {
				return 0, false
			}
			return offset + rest, true
		}
		offset += child.NumLeaves
	}
	return 0, false
}
