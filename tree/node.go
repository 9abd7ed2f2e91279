// Package tree implements the hierarchical k-centers clustering tree: the
// recursive builder, the incremental inserter, and the best-bin-first
// searcher that together make up the algorithmic core of the index.
package tree

import "github.com/gopherforest/hkctree/core"

// Node is one node of a clustering tree. A node is terminal iff Children is
// empty iff Points is non-empty. Every PointID in the dataset appears in
// exactly one terminal node of each tree.
type Node struct {
	// PivotID is the point id of the cluster center this node was split
	// off from. HasPivot is false only for a tree root, which was never
	// chosen as anyone's center.
	PivotID  core.PointID
	HasPivot bool

	// Children holds exactly Branching entries for a non-terminal node,
	// zero for a terminal one.
	Children []*Node

	// Points holds the point ids routed to this leaf, non-empty only
	// when the node is terminal.
	Points []core.PointID
}

// IsTerminal reports whether n is a leaf.
func (n *Node) IsTerminal() bool {
	return len(n.Children) == 0
}
