package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopherforest/hkctree/core"
	"github.com/gopherforest/hkctree/internal/arena"
	"github.com/gopherforest/hkctree/internal/bitset"
	"github.com/gopherforest/hkctree/internal/chooser"
)

func buildScenarioForest(t *testing.T) ([][]float32, []*Node, Config) {
	rows := [][]float32{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
	cfg := cfgFor(rows, 2, 2, chooser.Random, 42)
	a := arena.New[Node](16)

	root, err := Build(a, cfg, indicesFor(rows))
	require.NoError(t, err)
	return rows, []*Node{root}, cfg
}

func TestSearchReturnsOneOfTheNearTie(t *testing.T) {
	_, roots, cfg := buildScenarioForest(t)
	result := NewTopKCollector(1)
	checked := bitset.New(4)

	Search(roots, cfg, []float32{0, 0.5}, 100, NoRemovals, result, checked)

	results := result.Results()
	require.Len(t, results, 1)
	assert.Contains(t, []core.PointID{0, 1}, results[0].ID)
	assert.InDelta(t, 0.25, results[0].Distance, 1e-6)
}

func TestSearchReturnsAllFourInAscendingOrder(t *testing.T) {
	_, roots, cfg := buildScenarioForest(t)
	result := NewTopKCollector(4)
	checked := bitset.New(4)

	Search(roots, cfg, []float32{0, 0.5}, 100, NoRemovals, result, checked)

	results := result.Results()
	require.Len(t, results, 4)
	assert.ElementsMatch(t, []core.PointID{0, 1, 2, 3}, []core.PointID{
		results[0].ID, results[1].ID, results[2].ID, results[3].ID,
	})

	dists := make([]float32, 4)
	for i, r := range results {
		dists[i] = r.Distance
	}
	assert.InDeltaSlice(t, []float32{0.25, 0.25, 190.25, 210.25}, dists, 1e-6)
}

type fakeRemoved struct{ ids map[uint32]bool }

func (f fakeRemoved) Contains(x uint32) bool { return f.ids[x] }

func TestSearchFiltersTombstones(t *testing.T) {
	_, roots, cfg := buildScenarioForest(t)
	removed := fakeRemoved{ids: map[uint32]bool{0: true}}
	result := NewTopKCollector(1)
	checked := bitset.New(4)

	Search(roots, cfg, []float32{0, 0.5}, 100, removed, result, checked)

	results := result.Results()
	require.Len(t, results, 1)
	assert.Equal(t, core.PointID(1), results[0].ID)
	assert.InDelta(t, 0.25, results[0].Distance, 1e-6)
}
