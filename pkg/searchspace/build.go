package searchspace

import (
	"fmt"
	"sort"

	"github.com/atfgo/atf/pkg/param"
)

type span struct{ lo, hi int }

// groupSpans partitions parameter positions into maximal contiguous
// dependency groups. A constraint referencing an earlier parameter forces
// every position between the two into the same group, since a group must
// be a contiguous run; spans capture that requirement per edge and are then
// merged the way overlapping-interval problems are solved.
func groupSpans(params []param.Parameter) ([]span, error) {
	nameIdx := make(map[string]int, len(params))
	spans := make([]span, 0, len(params))

	for i, p := range params {
		spans = append(spans, span{lo: i, hi: i})
		if p.Constraint != nil {
			for _, dep := range p.Constraint.Depends {
				d, ok := nameIdx[dep]
				if !ok {
					return nil, fmt.Errorf("searchspace: parameter %q constraint depends on unknown or not-yet-declared parameter %q", p.Name, dep)
				}
				if d >= i {
					return nil, fmt.Errorf("searchspace: parameter %q constraint may only depend on earlier parameters, got %q", p.Name, dep)
				}
				spans = append(spans, span{lo: d, hi: i})
			}
		}
		if _, dup := nameIdx[p.Name]; dup {
			return nil, fmt.Errorf("searchspace: duplicate parameter name %q", p.Name)
		}
		nameIdx[p.Name] = i
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })

	merged := make([]span, 0, len(spans))
	cur := spans[0]
	for _, s := range spans[1:] {
		if s.lo <= cur.hi {
			if s.hi > cur.hi {
				cur.hi = s.hi
			}
			continue
		}
		merged = append(merged, cur)
		cur = s
	}
	merged = append(merged, cur)
	return merged, nil
}

// buildGroupTree performs the constraint-pruned depth-first construction of
// one group's candidate tree: a child is attached to its parent only once
// its own subtree is known to contain at least one leaf.
func buildGroupTree(params []param.Parameter) *Node {
	root := &Node{}
	if len(params) == 0 {
		root.NumLeaves = 1
		return root
	}
	var rec func(node *Node, depth int, bound map[string]param.Value)
	rec = func(node *Node, depth int, bound map[string]param.Value) {
		if depth == len(params) {
			node.NumLeaves = 1
			return
		}
		p := params[depth]
		for i := 0; i < p.Values.Len(); i++ {
			v := p.Values.At(i)
			if p.Constraint != nil {
				args := make(map[string]param.Value, len(bound)+1)
				for k, bv := range bound {
					args[k] = bv
				}
				args[p.Name] = v
				if !p.Constraint.Predicate(args) {
					continue
				}
			}
			child := &Node{Value: v}
			var nextBound map[string]param.Value
			if depth+1 < len(params) {
				nextBound = make(map[string]param.Value, len(bound)+1)
				for k, bv := range bound {
					nextBound[k] = bv
				}
				nextBound[p.Name] = v
			}
			rec(child, depth+1, nextBound)
			if child.NumLeaves > 0 {
				node.Children = append(node.Children, child)
				node.NumLeaves += child.NumLeaves
			}
		}
	}
	rec(root, 0, map[string]param.Value{})
	return root
}

// buildChainOfTrees groups params into maximal contiguous dependency groups
// and builds one Tree per group, in declaration order.
func buildChainOfTrees(params []param.Parameter) (ChainOfTrees, error) {
	spans, err := groupSpans(params)
	if err != nil {
		return nil, err
	}
	cot := make(ChainOfTrees, 0, len(spans))
	for _, s := range spans {
		group := params[s.lo : s.hi+1]
		names := make([]string, len(group))
		for i, p := range group {
			names[i] = p.Name
		}
		root := buildGroupTree(group)
		cot = append(cot, Tree{Root: root, ParamNames: names})
	}
	return cot, nil
}
