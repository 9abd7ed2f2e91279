package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gopherforest/hkctree/core"
)

func TestTopKCollectorKeepsBestK(t *testing.T) {
	c := NewTopKCollector(2)
	c.Add(5, 100)
	c.Add(1, 101)
	c.Add(3, 102)

	results := c.Results()
	assert.Len(t, results, 2)
	assert.Equal(t, core.PointID(101), results[0].ID)
	assert.Equal(t, float32(1), results[0].Distance)
	assert.Equal(t, core.PointID(102), results[1].ID)
	assert.Equal(t, float32(3), results[1].Distance)
}

func TestTopKCollectorAscendingOrder(t *testing.T) {
	c := NewTopKCollector(4)
	dists := []float32{0.25, 0.25, 200.25, 190.25}
	for i, d := range dists {
		c.Add(d, core.PointID(i))
	}

	results := c.Results()
	assert.Equal(t, []float32{0.25, 0.25, 190.25, 200.25}, []float32{
		results[0].Distance, results[1].Distance, results[2].Distance, results[3].Distance,
	})
}

func TestTopKCollectorIsFullAndWorstDistance(t *testing.T) {
	c := NewTopKCollector(1)
	assert.False(t, c.IsFull())
	c.Add(5, 1)
	assert.True(t, c.IsFull())
	assert.Equal(t, float32(5), c.WorstDistance())

	c.Add(2, 2)
	assert.Equal(t, float32(2), c.WorstDistance())
}
