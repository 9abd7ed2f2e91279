package hkctree

import (
	"github.com/gopherforest/hkctree/internal/chooser"
	"github.com/gopherforest/hkctree/internal/conv"
	"github.com/gopherforest/hkctree/persistence"
)

// writeScalarParams writes the forest's scalar configuration (branching,
// centers_init, trees, leaf_size) and the internal memory counter ahead of
// the per-tree data, per spec §4.6.
func writeScalarParams(w *persistence.BinaryIndexWriter, params IndexParams, memoryCounter int64) error {
	branching, err := conv.IntToUint32(params.Branching)
	if err != nil {
		return err
	}
	trees, err := conv.IntToUint32(params.Trees)
	if err != nil {
		return err
	}
	leafSize, err := conv.IntToUint32(params.LeafSize)
	if err != nil {
		return err
	}

	fields := []uint32{branching, uint32(params.CentersInit), trees, leafSize}
	if err := w.WriteUint32Slice(fields); err != nil {
		return err
	}

	counter, err := conv.IntToUint64(int(memoryCounter))
	if err != nil {
		return err
	}
	return w.WriteUint64Slice([]uint64{counter})
}

func readScalarParams(r *persistence.BinaryIndexReader) (IndexParams, int64, error) {
	fields, err := r.ReadUint32Slice(4)
	if err != nil {
		return IndexParams{}, 0, err
	}

	branching, err := conv.Uint32ToInt(fields[0])
	if err != nil {
		return IndexParams{}, 0, err
	}
	trees, err := conv.Uint32ToInt(fields[2])
	if err != nil {
		return IndexParams{}, 0, err
	}
	leafSize, err := conv.Uint32ToInt(fields[3])
	if err != nil {
		return IndexParams{}, 0, err
	}

	counter, err := r.ReadUint64Slice(1)
	if err != nil {
		return IndexParams{}, 0, err
	}

	params := IndexParams{
		Branching:   branching,
		CentersInit: chooser.Strategy(fields[1]),
		Trees:       trees,
		LeafSize:    leafSize,
	}
	return params, int64(counter[0]), nil
}
