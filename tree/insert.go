package tree

import (
	"github.com/gopherforest/hkctree/core"
	"github.com/gopherforest/hkctree/internal/arena"
)

// Insert routes id into the leaf reachable by greedy nearest-pivot descent
// from root, appends it there, and reclusters that leaf in place (via
// Build's labeling/partition logic) once it reaches cfg.Branching points.
// Other trees in the forest are untouched.
func Insert(a *arena.Arena[Node], cfg Config, root *Node, id core.PointID) error {
	node := root
	for !node.IsTerminal() {
		v := cfg.Vector(id)
		best := 0
		bestDist := cfg.Dist(v, cfg.Vector(node.Children[0].PivotID))
		for i := 1; i < len(node.Children); i++ {
			d := cfg.Dist(v, cfg.Vector(node.Children[i].PivotID))
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		node = node.Children[best]
	}

	node.Points = append(node.Points, id)
	cfg.accountPoints(1)
	if len(node.Points) >= cfg.Branching {
		indices := append([]core.PointID(nil), node.Points...)
		return buildInto(a, cfg, node, indices)
	}
	return nil
}
