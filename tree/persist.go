package tree

import (
	"fmt"

	"github.com/gopherforest/hkctree/core"
	"github.com/gopherforest/hkctree/internal/arena"
	"github.com/gopherforest/hkctree/internal/conv"
	"github.com/gopherforest/hkctree/persistence"
)

// WriteForest serializes every tree in roots through w. Unlike the
// reference hierarchical clustering index, leaf point lists are written
// explicitly rather than reconstructed from the dataset, so a loaded
// forest is usable without rescanning every point's original tree
// assignment. Scalar fields are framed as one- or two-element slices
// through w, the same convention persistence.BinaryIndexWriter's own callers use
// for fixed-size values.
func WriteForest(w *persistence.BinaryIndexWriter, roots []*Node) error {
	count, err := conv.IntToUint32(len(roots))
	if err != nil {
		return err
	}
	if err := w.WriteUint32Slice([]uint32{count}); err != nil {
		return err
	}
	for _, root := range roots {
		if err := writeNode(w, root); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w *persistence.BinaryIndexWriter, n *Node) error {
	var hasPivot uint32
	if n.HasPivot {
		hasPivot = 1
	}
	if err := w.WriteUint32Slice([]uint32{hasPivot, uint32(n.PivotID)}); err != nil {
		return err
	}

	if n.IsTerminal() {
		count, err := conv.IntToUint32(len(n.Points))
		if err != nil {
			return err
		}
		if err := w.WriteUint32Slice([]uint32{0, count}); err != nil {
			return err
		}
		ids := make([]uint32, len(n.Points))
		for i, id := range n.Points {
			ids[i] = uint32(id)
		}
		return w.WriteUint32Slice(ids)
	}

	count, err := conv.IntToUint32(len(n.Children))
	if err != nil {
		return err
	}
	if err := w.WriteUint32Slice([]uint32{1, count}); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := writeNode(w, child); err != nil {
			return err
		}
	}
	return nil
}

// ReadForest deserializes a forest previously written by WriteForest,
// allocating every node from a.
func ReadForest(r *persistence.BinaryIndexReader, a *arena.Arena[Node]) ([]*Node, error) {
	counts, err := r.ReadUint32Slice(1)
	if err != nil {
		return nil, err
	}
	treeCount, err := conv.Uint32ToInt(counts[0])
	if err != nil {
		return nil, err
	}

	roots := make([]*Node, treeCount)
	for i := range roots {
		node, err := readNode(r, a)
		if err != nil {
			return nil, err
		}
		roots[i] = node
	}
	return roots, nil
}

func readNode(r *persistence.BinaryIndexReader, a *arena.Arena[Node]) (*Node, error) {
	node := a.Alloc()

	head, err := r.ReadUint32Slice(2)
	if err != nil {
		return nil, err
	}
	node.HasPivot = head[0] != 0
	node.PivotID = core.PointID(head[1])

	kindAndCount, err := r.ReadUint32Slice(2)
	if err != nil {
		return nil, err
	}
	kind := kindAndCount[0]
	count, err := conv.Uint32ToInt(kindAndCount[1])
	if err != nil {
		return nil, err
	}

	switch kind {
	case 0:
		ids, err := r.ReadUint32Slice(count)
		if err != nil {
			return nil, err
		}
		node.Points = make([]core.PointID, len(ids))
		for i, id := range ids {
			node.Points[i] = core.PointID(id)
		}
	case 1:
		node.Children = make([]*Node, count)
		for i := range node.Children {
			child, err := readNode(r, a)
			if err != nil {
				return nil, err
			}
			node.Children[i] = child
		}
	default:
		return nil, fmt.Errorf("tree: corrupt node kind %d", kind)
	}

	return node, nil
}
