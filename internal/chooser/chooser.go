// Package chooser implements the three center-selection strategies the
// hierarchical clustering tree builder samples cluster representatives
// from.
package chooser

import (
	"errors"

	"github.com/gopherforest/hkctree/core"
	"github.com/gopherforest/hkctree/distance"
	"github.com/gopherforest/hkctree/util"
)

// ErrBadBranching is returned when branching is below the minimum of 2.
// Choose also returns it for an unknown Strategy.
var ErrBadBranching = errors.New("chooser: branching must be at least 2")

// Strategy identifies a center-selection algorithm.
type Strategy int

const (
	Random Strategy = iota
	Gonzales
	KMeanspp
)

// VectorAt fetches the vector backing a point id, the same contract the
// tree builder uses against its dataset collaborator.
type VectorAt func(id core.PointID) []float32

// Choose selects up to branching centers from indices[:n] using the given
// strategy, writing the chosen point ids into centers (len(centers) must be
// >= branching) and returning how many were actually chosen (k <= branching,
// k == n if n < branching).
func Choose(strategy Strategy, rng *util.RNG, dist distance.Func, vec VectorAt, indices []core.PointID, n int, branching int, centers []core.PointID) (int, error) {
	if branching < 2 {
		return 0, ErrBadBranching
	}
	if n < branching {
		copy(centers, indices[:n])
		return n, nil
	}
	switch strategy {
	case Random:
		return chooseRandom(rng, indices, n, branching, centers), nil
	case Gonzales:
		return chooseGonzales(rng, dist, vec, indices, n, branching, centers), nil
	case KMeanspp:
		return chooseKMeansPlusPlus(rng, dist, vec, indices, n, branching, centers), nil
	default:
		return 0, ErrBadBranching
	}
}

// chooseRandom samples branching distinct positions from indices[:n]
// without replacement via a partial Fisher-Yates shuffle.
func chooseRandom(rng *util.RNG, indices []core.PointID, n, branching int, centers []core.PointID) int {
	scratch := make([]core.PointID, n)
	copy(scratch, indices[:n])
	for i := 0; i < branching; i++ {
		j := i + rng.Intn(n-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
	}
	copy(centers, scratch[:branching])
	return branching
}

// chooseGonzales greedily picks the point maximizing the minimum distance
// to the centers already chosen, starting from a uniformly random first
// pick. It aborts early (k < branching) once every remaining candidate is
// already a duplicate of a chosen center.
func chooseGonzales(rng *util.RNG, dist distance.Func, vec VectorAt, indices []core.PointID, n, branching int, centers []core.PointID) int {
	minDist := make([]float32, n)
	for i := range minDist {
		minDist[i] = -1 // unset sentinel
	}

	first := rng.Intn(n)
	centers[0] = indices[first]
	k := 1
	updateMinDist(dist, vec, indices, n, minDist, centers[0])

	for k < branching {
		bestIdx := -1
		var bestDist float32 = -1
		for i := 0; i < n; i++ {
			switch {
			case minDist[i] > bestDist:
				bestDist = minDist[i]
				bestIdx = i
			case minDist[i] == bestDist && bestIdx != -1 && indices[i] < indices[bestIdx]:
				bestIdx = i
			}
		}
		if bestIdx == -1 || bestDist <= 0 {
			break
		}
		centers[k] = indices[bestIdx]
		k++
		updateMinDist(dist, vec, indices, n, minDist, centers[k-1])
	}
	return k
}

func updateMinDist(dist distance.Func, vec VectorAt, indices []core.PointID, n int, minDist []float32, center core.PointID) {
	cv := vec(center)
	for i := 0; i < n; i++ {
		d := dist(vec(indices[i]), cv)
		if minDist[i] < 0 || d < minDist[i] {
			minDist[i] = d
		}
	}
}

// chooseKMeansPlusPlus draws the first center uniformly at random and each
// subsequent one with probability proportional to its squared distance to
// the nearest already-chosen center. It aborts early (k < branching) once
// every remaining weight collapses to zero.
func chooseKMeansPlusPlus(rng *util.RNG, dist distance.Func, vec VectorAt, indices []core.PointID, n, branching int, centers []core.PointID) int {
	minDist := make([]float32, n)
	for i := range minDist {
		minDist[i] = -1
	}

	first := rng.Intn(n)
	centers[0] = indices[first]
	k := 1
	updateMinDist(dist, vec, indices, n, minDist, centers[0])

	for k < branching {
		var total float64
		for i := 0; i < n; i++ {
			total += float64(minDist[i])
		}
		if total <= 0 {
			break
		}
		target := rng.Float64() * total
		var cum float64
		chosen := -1
		for i := 0; i < n; i++ {
			cum += float64(minDist[i])
			if cum >= target {
				chosen = i
				break
			}
		}
		if chosen == -1 {
			chosen = n - 1
		}
		centers[k] = indices[chosen]
		k++
		updateMinDist(dist, vec, indices, n, minDist, centers[k-1])
	}
	return k
}
