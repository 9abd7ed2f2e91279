package tree

import (
	"github.com/gopherforest/hkctree/core"
	"github.com/gopherforest/hkctree/internal/queue"
)

// ResultCollector accumulates candidates during a search. Its internals
// are opaque to the searcher; TopKCollector below is the default, but
// callers may supply their own (e.g. one that also filters by metadata).
type ResultCollector interface {
	Add(distance float32, id core.PointID)
	IsFull() bool
	WorstDistance() float32
}

// TopKCollector keeps the K candidates with the smallest distance seen so
// far, backed by a bounded max-heap so the worst-so-far candidate is
// always known in O(1) and evicted in O(log K).
type TopKCollector struct {
	k     int
	heap  *queue.PriorityQueue[core.PointID]
}

// NewTopKCollector creates a collector that retains the k best candidates.
func NewTopKCollector(k int) *TopKCollector {
	return &TopKCollector{k: k, heap: queue.NewMax[core.PointID](k)}
}

func (c *TopKCollector) Add(distance float32, id core.PointID) {
	if c.heap.Len() < c.k {
		c.heap.PushItem(queue.Item[core.PointID]{Value: id, Distance: distance})
		return
	}
	top, ok := c.heap.TopItem()
	if ok && distance < top.Distance {
		c.heap.PopItem()
		c.heap.PushItem(queue.Item[core.PointID]{Value: id, Distance: distance})
	}
}

func (c *TopKCollector) IsFull() bool {
	return c.heap.Len() >= c.k
}

func (c *TopKCollector) WorstDistance() float32 {
	top, ok := c.heap.TopItem()
	if !ok {
		return 0
	}
	return top.Distance
}

// Result is one (id, distance) pair in ascending-distance order.
type Result struct {
	ID       core.PointID
	Distance float32
}

// Results drains the collector into ascending-distance order, destroying
// its internal heap in the process.
func (c *TopKCollector) Results() []Result {
	out := make([]Result, 0, c.heap.Len())
	for {
		item, ok := c.heap.PopItem()
		if !ok {
			break
		}
		out = append(out, Result{ID: item.Value, Distance: item.Distance})
	}
	// heap is max-ordered; reverse to ascending.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
