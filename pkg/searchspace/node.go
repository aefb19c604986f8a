package searchspace

import "github.com/atfgo/atf/pkg/param"

// Node is one level of a group's candidate tree: the value bound to this
// node's parameter, and the admissible continuations below it. NumLeaves is
// the count of complete, constraint-satisfying assignments reachable from
// this node; a child is only attached once it is known to have at least one
// leaf beneath it, so a fully materialized tree already has every dead
// branch pruned away.
type Node struct {
	Value     param.Value
	Children  []*Node
	NumLeaves int64
}

// Tree is one independent group's candidate tree. The root node carries no
// value of its own; its children are the admissible values of the group's
// first parameter.
type Tree struct {
	Root        *Node
	ParamNames  []string
}

// ChainOfTrees is the canonical representation of a constrained search
// space: one Tree per maximal contiguous group of interdependent
// parameters, in declaration order.
type ChainOfTrees []Tree
