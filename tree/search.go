package tree

import (
	"github.com/gopherforest/hkctree/internal/bitset"
	"github.com/gopherforest/hkctree/internal/queue"
)

// RemovedPoints reports whether a point has been logically deleted. A
// *roaring.Bitmap satisfies this directly.
type RemovedPoints interface {
	Contains(x uint32) bool
}

type noRemovals struct{}

func (noRemovals) Contains(uint32) bool { return false }

// NoRemovals is a RemovedPoints that never filters anything, for callers
// that don't track tombstones.
var NoRemovals RemovedPoints = noRemovals{}

// Search performs best-bin-first descent across every tree in roots,
// offering candidates to result and returning the number of distance
// evaluations performed against actual points (as opposed to pivots).
//
// checked is caller-owned scratch state so concurrent read-only searches
// can each bring their own and run in parallel against an unmodified
// forest.
func Search(roots []*Node, cfg Config, query []float32, maxChecks int, removed RemovedPoints, result ResultCollector, checked *bitset.Set) int {
	checked.Reset()
	heap := queue.NewMin[*Node](64)
	checks := 0

	var descend func(node *Node)
	descend = func(node *Node) {
		if node.IsTerminal() {
			if checks >= maxChecks && result.IsFull() {
				return
			}
			for _, id := range node.Points {
				if checked.Test(uint32(id)) || removed.Contains(uint32(id)) {
					continue
				}
				d := cfg.Dist(cfg.Vector(id), query)
				result.Add(d, id)
				checked.Set(uint32(id))
				checks++
			}
			return
		}

		dists := make([]float32, len(node.Children))
		bestIdx := 0
		for i, child := range node.Children {
			dists[i] = cfg.Dist(cfg.Vector(child.PivotID), query)
			if dists[i] < dists[bestIdx] {
				bestIdx = i
			}
		}
		for i, child := range node.Children {
			if i == bestIdx {
				continue
			}
			heap.PushItem(queue.Item[*Node]{Value: child, Distance: dists[i]})
		}
		descend(node.Children[bestIdx])
	}

	for _, root := range roots {
		descend(root)
	}

	for heap.Len() > 0 && (checks < maxChecks || !result.IsFull()) {
		item, ok := heap.PopItem()
		if !ok {
			break
		}
		descend(item.Value)
	}

	return checks
}
