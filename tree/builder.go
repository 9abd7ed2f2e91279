package tree

import (
	"github.com/gopherforest/hkctree/core"
	"github.com/gopherforest/hkctree/distance"
	"github.com/gopherforest/hkctree/internal/arena"
	"github.com/gopherforest/hkctree/internal/chooser"
	"github.com/gopherforest/hkctree/util"
)

// Config bundles everything a build or insert needs besides the index
// subset itself: the shape parameters, the distance/vector collaborators,
// and the RNG the center chooser draws from.
type Config struct {
	Branching   int
	LeafSize    int
	CentersInit chooser.Strategy
	Dist        distance.Func
	Vector      func(core.PointID) []float32
	RNG         *util.RNG

	// MemCounter, if non-nil, accumulates the byte footprint of every
	// slice a node embeds beyond the arena's own per-node bookkeeping
	// (Children and Points backing arrays). Callers that don't care about
	// memory accounting may leave it nil.
	MemCounter *int64
}

const (
	pointerSize = 8 // uintptr on amd64/arm64, the two platforms this module supports
	pointIDSize = 4 // core.PointID is a uint32
)

func (cfg Config) accountChildren(k int) {
	if cfg.MemCounter != nil {
		*cfg.MemCounter += int64(k) * pointerSize
	}
}

func (cfg Config) accountPoints(n int) {
	if cfg.MemCounter != nil {
		*cfg.MemCounter += int64(n) * pointIDSize
	}
}

// Build recursively partitions indices into a tree rooted at a freshly
// allocated node, using a. Indices is mutated in place (partitioned by
// label); callers that need the original order must copy first.
func Build(a *arena.Arena[Node], cfg Config, indices []core.PointID) (*Node, error) {
	root := a.Alloc()
	if err := buildInto(a, cfg, root, indices); err != nil {
		return nil, err
	}
	return root, nil
}

func buildInto(a *arena.Arena[Node], cfg Config, node *Node, indices []core.PointID) error {
	n := len(indices)
	if n < cfg.LeafSize {
		makeTerminal(cfg, node, indices)
		return nil
	}

	centers := make([]core.PointID, cfg.Branching)
	k, err := chooser.Choose(cfg.CentersInit, cfg.RNG, cfg.Dist, chooser.VectorAt(cfg.Vector), indices, n, cfg.Branching, centers)
	if err != nil {
		return err
	}
	if k < cfg.Branching {
		makeTerminal(cfg, node, indices)
		return nil
	}
	centers = centers[:k]

	labels := make([]int, n)
	computeLabels(cfg, indices, centers, labels)

	starts := partitionByLabel(indices, labels, k)

	node.Points = nil
	node.Children = make([]*Node, k)
	cfg.accountChildren(k)
	for i := 0; i < k; i++ {
		child := a.Alloc()
		child.PivotID = centers[i]
		child.HasPivot = true
		node.Children[i] = child

		start, end := starts[i], starts[i+1]
		if err := buildInto(a, cfg, child, indices[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func makeTerminal(cfg Config, node *Node, indices []core.PointID) {
	node.Children = nil
	node.Points = append(node.Points[:0], indices...)
	cfg.accountPoints(len(indices))
}

// computeLabels assigns each point to the nearest center, breaking ties by
// the lowest label index (i.e. strict less-than keeps the first match).
func computeLabels(cfg Config, indices []core.PointID, centers []core.PointID, labels []int) {
	centerVecs := make([][]float32, len(centers))
	for i, c := range centers {
		centerVecs[i] = cfg.Vector(c)
	}
	for j, id := range indices {
		v := cfg.Vector(id)
		best := 0
		bestDist := cfg.Dist(v, centerVecs[0])
		for i := 1; i < len(centerVecs); i++ {
			d := cfg.Dist(v, centerVecs[i])
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		labels[j] = best
	}
}

// partitionByLabel reorders indices (and the parallel labels slice) in
// place so that all points with a given label occupy a contiguous range,
// via a per-label two-pointer sweep. It returns k+1 boundary offsets such
// that label i occupies indices[starts[i]:starts[i+1]].
func partitionByLabel(indices []core.PointID, labels []int, k int) []int {
	n := len(indices)
	starts := make([]int, k+1)

	end := 0
	for i := 0; i < k; i++ {
		starts[i] = end
		for j := end; j < n; j++ {
			if labels[j] == i {
				indices[j], indices[end] = indices[end], indices[j]
				labels[j], labels[end] = labels[end], labels[j]
				end++
			}
		}
	}
	starts[k] = end
	return starts
}
