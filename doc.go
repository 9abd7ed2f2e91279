// Package hkctree implements a hierarchical k-centers clustering index
// for approximate nearest-neighbor search over fixed-dimension vectors.
//
// A forest of independently seeded trees is built by recursively
// partitioning the dataset via k-centers clustering with a fixed
// branching factor; queries use best-bin-first traversal across all
// trees, bounded by a check budget, to trade recall for latency.
//
// # Quick Start
//
//	idx, err := hkctree.NewBuilder(128).
//	    Branching(16).
//	    Trees(8).
//	    LeafSize(64).
//	    CentersInit(chooser.KMeanspp).
//	    Metric(distance.MetricL2).
//	    BuildWithData(vectors)
//
//	result := tree.NewTopKCollector(10)
//	err = idx.FindNeighbors(result, query, hkctree.SearchParams{Checks: 128})
//	for _, r := range result.Results() {
//	    fmt.Println(r.ID, r.Distance)
//	}
//
// # Incremental Inserts and Rebuilds
//
// AddPoints routes new points into every existing tree by greedy
// descent, splitting a leaf in place once it overflows. Once the
// dataset has grown past rebuildThreshold times its size at the last
// full Build, AddPoints instead discards the forest and rebuilds from
// scratch:
//
//	idx.AddPoints(moreVectors, 2.0)
//
// # Tombstones
//
// Points are never physically removed. RemovePoint marks a point id as
// logically deleted; FindNeighbors silently skips tombstoned ids.
//
// # Persistence
//
// Save/Load stream the forest topology — including leaf point lists,
// so a loaded index is immediately queryable without rescanning the
// dataset. The raw vector data itself is never persisted by this
// package; callers own their Dataset's durability separately.
//
// # Key Properties
//
//   - Pluggable distance function and dataset storage
//   - Three center-initialization strategies: random, Gonzales, k-means++
//   - Deterministic builds given a fixed random seed
//   - Single-threaded building; concurrent read-only search is safe
//     given each caller supplies its own result collector
package hkctree
