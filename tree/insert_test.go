package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopherforest/hkctree/core"
	"github.com/gopherforest/hkctree/internal/arena"
	"github.com/gopherforest/hkctree/internal/chooser"
)

// TestInsertOverflowRecluster mirrors scenario 4: an empty-capable index
// with branching=2, leaf_size=2 receives three points one at a time; the
// root overflows on the second point and reclusters, routing the third
// point to the farther child.
func TestInsertOverflowRecluster(t *testing.T) {
	rows := [][]float32{{0, 0}, {0, 1}, {10, 10}}
	cfg := cfgFor(rows, 2, 2, chooser.Random, 11)
	a := arena.New[Node](16)

	root := a.Alloc()
	for id := range rows {
		require.NoError(t, Insert(a, cfg, root, core.PointID(id)))
	}

	got := allLeafPoints(root)
	assert.ElementsMatch(t, []core.PointID{0, 1, 2}, got)
}

func TestInsertRoutesToNearestLeaf(t *testing.T) {
	rows := [][]float32{{0, 0}, {0, 1}, {10, 10}, {10, 11}, {20, 20}}
	cfg := cfgFor(rows, 2, 2, chooser.Random, 5)
	a := arena.New[Node](16)

	root, err := Build(a, cfg, indicesFor(rows[:4]))
	require.NoError(t, err)

	require.NoError(t, Insert(a, cfg, root, core.PointID(4)))

	got := allLeafPoints(root)
	assert.ElementsMatch(t, []core.PointID{0, 1, 2, 3, 4}, got)
}
