// Package hkctree implements a hierarchical k-centers clustering index for
// approximate nearest-neighbor search: a forest of independently seeded
// trees built by recursive k-centers partitioning, queried by best-bin-
// first traversal bounded by a check budget.
package hkctree

import (
	"context"
	"fmt"
	"io"
	"time"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/gopherforest/hkctree/core"
	"github.com/gopherforest/hkctree/dataset"
	"github.com/gopherforest/hkctree/distance"
	"github.com/gopherforest/hkctree/internal/arena"
	"github.com/gopherforest/hkctree/internal/bitset"
	"github.com/gopherforest/hkctree/internal/chooser"
	"github.com/gopherforest/hkctree/internal/conv"
	"github.com/gopherforest/hkctree/persistence"
	"github.com/gopherforest/hkctree/tree"
	"github.com/gopherforest/hkctree/util"
)

// nodeBaseSize is the fixed per-node struct footprint the arena's element
// count doesn't otherwise expose (tree.Node's Children/Points fields are
// variable-width slice headers, accounted separately by memCounter).
var nodeBaseSize = int(unsafe.Sizeof(tree.Node{}))

// IndexParams configures a forest's shape. Zero values are not valid;
// use DefaultIndexParams or the Builder to get sane defaults.
type IndexParams struct {
	Branching   int
	CentersInit chooser.Strategy
	Trees       int
	LeafSize    int
}

// DefaultIndexParams matches the façade's documented defaults.
func DefaultIndexParams() IndexParams {
	return IndexParams{
		Branching:   32,
		CentersInit: chooser.Random,
		Trees:       4,
		LeafSize:    100,
	}
}

func (p IndexParams) validate() error {
	if p.Branching < 2 {
		return fmt.Errorf("%w: branching must be >= 2, got %d", ErrBadParameter, p.Branching)
	}
	if p.Trees < 1 {
		return fmt.Errorf("%w: trees must be >= 1, got %d", ErrBadParameter, p.Trees)
	}
	if p.LeafSize < 1 {
		return fmt.Errorf("%w: leaf_size must be >= 1, got %d", ErrBadParameter, p.LeafSize)
	}
	switch p.CentersInit {
	case chooser.Random, chooser.Gonzales, chooser.KMeanspp:
	default:
		return fmt.Errorf("%w: unknown centers_init %d", ErrBadParameter, p.CentersInit)
	}
	return nil
}

// SearchParams bounds a single FindNeighbors call.
type SearchParams struct {
	// Checks is the check budget (max_checks). A value <= 0 means
	// "unbounded" in the sense that the search runs until the forest is
	// exhausted, leaving early termination entirely to the collector.
	Checks int
}

// Index is a hierarchical clustering ANN index: a forest of trees over a
// shared Dataset, plus the ambient bookkeeping (removed-points tombstones,
// rebuild policy, logging, metrics) the façade owns.
type Index struct {
	params IndexParams
	dist   distance.Func
	data   dataset.Dataset

	arena *arena.Arena[tree.Node]
	roots []*tree.Node

	removed     *roaring.Bitmap
	sizeAtBuild int

	// memCounter tracks bytes embedded in nodes (Children/Points backing
	// arrays) beyond the arena's own per-node accounting. See
	// tree.Config.MemCounter.
	memCounter int64

	opts         options
	rngSeed      int64
	nextTreeSeed int64
}

// New creates an empty index over a freshly allocated dataset.Flat of the
// given dimension. Use NewWithData to bring your own Dataset.
func New(dimension int, params IndexParams, dist distance.Func, opts ...Option) (*Index, error) {
	return NewWithData(dataset.NewFlat(dimension), params, dist, opts...)
}

// NewWithData creates an empty index over an existing Dataset. Any rows
// already present in data are NOT indexed until Build is called.
func NewWithData(data dataset.Dataset, params IndexParams, dist distance.Func, opts ...Option) (*Index, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	seed := time.Now().UnixNano()
	if o.randomSeed != nil {
		seed = *o.randomSeed
	}
	return &Index{
		params:       params,
		dist:         dist,
		data:         data,
		removed:      roaring.New(),
		opts:         o,
		rngSeed:      seed,
		nextTreeSeed: seed,
	}, nil
}

func (idx *Index) treeConfig() tree.Config {
	return tree.Config{
		Branching:   idx.params.Branching,
		LeafSize:    idx.params.LeafSize,
		CentersInit: idx.params.CentersInit,
		Dist:        idx.dist,
		Vector: func(id core.PointID) []float32 {
			row, _ := idx.data.Vector(id)
			return row
		},
		MemCounter: &idx.memCounter,
	}
}

func (idx *Index) drawTreeSeed() int64 {
	seed := idx.nextTreeSeed
	idx.nextTreeSeed++
	return seed
}

// Build discards any existing forest and builds params.Trees fresh ones
// over the full current dataset range [0, size).
func (idx *Index) Build() error {
	ctx := context.Background()
	start := time.Now()

	size := idx.data.Len()
	idx.arena = arena.New[tree.Node](1024)
	idx.roots = make([]*tree.Node, idx.params.Trees)
	idx.memCounter = 0
	// Reset the tree-seed sequence so build is idempotent: calling Build
	// twice on an unchanged dataset with the same seed draws the exact
	// same per-tree seeds and yields isomorphic forests.
	idx.nextTreeSeed = idx.rngSeed

	indices := make([]core.PointID, size)
	for i := range indices {
		indices[i] = core.PointID(i)
	}

	for t := 0; t < idx.params.Trees; t++ {
		cfg := idx.treeConfig()
		cfg.RNG = util.NewRNG(idx.drawTreeSeed())

		scratch := append([]core.PointID(nil), indices...)
		root, err := tree.Build(idx.arena, cfg, scratch)
		if err != nil {
			idx.opts.logger.LogBuild(ctx, idx.params.Trees, size, err)
			idx.opts.metricsCollector.RecordBuild(time.Since(start), size, err)
			return err
		}
		idx.roots[t] = root
	}

	idx.sizeAtBuild = size
	idx.opts.logger.LogBuild(ctx, idx.params.Trees, size, nil)
	idx.opts.metricsCollector.RecordBuild(time.Since(start), size, nil)
	return nil
}

// AddPoints appends points to the dataset and either inserts them
// incrementally into every tree, or, if the dataset has grown beyond
// rebuildThreshold times the size at the last build, discards the forest
// and performs a full Build instead.
//
// rebuildThreshold <= 1 disables the rebuild trigger entirely.
func (idx *Index) AddPoints(points [][]float32, rebuildThreshold float64) error {
	ctx := context.Background()
	start := time.Now()

	firstID, err := idx.data.Append(points)
	if err != nil {
		err = wrapShapeMismatch(err)
		idx.opts.logger.LogAddPoints(ctx, len(points), false, err)
		idx.opts.metricsCollector.RecordAddPoints(len(points), false, time.Since(start), err)
		return err
	}

	newSize := idx.data.Len()
	if rebuildThreshold > 1 && float64(newSize) > float64(idx.sizeAtBuild)*rebuildThreshold {
		err := idx.Build()
		idx.opts.logger.LogAddPoints(ctx, len(points), true, err)
		idx.opts.metricsCollector.RecordAddPoints(len(points), true, time.Since(start), err)
		return err
	}

	if idx.arena == nil {
		err := idx.Build()
		idx.opts.logger.LogAddPoints(ctx, len(points), true, err)
		idx.opts.metricsCollector.RecordAddPoints(len(points), true, time.Since(start), err)
		return err
	}

	for i := 0; i < len(points); i++ {
		id := firstID + core.PointID(i)
		for _, root := range idx.roots {
			cfg := idx.treeConfig()
			cfg.RNG = util.NewRNG(idx.drawTreeSeed())
			if err := tree.Insert(idx.arena, cfg, root, id); err != nil {
				idx.opts.logger.LogAddPoints(ctx, len(points), false, err)
				idx.opts.metricsCollector.RecordAddPoints(len(points), false, time.Since(start), err)
				return err
			}
		}
	}

	idx.opts.logger.LogAddPoints(ctx, len(points), false, nil)
	idx.opts.metricsCollector.RecordAddPoints(len(points), false, time.Since(start), nil)
	return nil
}

// RemovePoint tombstones id so future searches skip it. It does not
// reclaim any storage.
func (idx *Index) RemovePoint(id core.PointID) {
	idx.removed.Add(uint32(id))
}

// FindNeighbors runs best-bin-first search across the forest, offering
// candidates to result. The caller owns result's lifetime and semantics
// (e.g. a tree.TopKCollector for plain top-k).
func (idx *Index) FindNeighbors(result tree.ResultCollector, query []float32, params SearchParams) error {
	ctx := context.Background()
	start := time.Now()

	if idx.roots == nil {
		err := fmt.Errorf("hkctree: FindNeighbors called before Build")
		idx.opts.logger.LogSearch(ctx, 0, 0, err)
		idx.opts.metricsCollector.RecordSearch(0, time.Since(start), err)
		return err
	}

	maxChecks := params.Checks
	if maxChecks <= 0 {
		maxChecks = idx.data.Len()
	}

	checked := bitset.New(idx.data.Len())
	checks := tree.Search(idx.roots, idx.treeConfig(), query, maxChecks, idx.removed, result, checked)

	idx.opts.logger.LogSearch(ctx, checks, 0, nil)
	idx.opts.metricsCollector.RecordSearch(checks, time.Since(start), nil)
	return nil
}

// UsedMemory reports the forest's approximate byte footprint: the arena's
// live-plus-wasted node capacity times the fixed per-node struct size
// (arena chunks are never shrunk, so the tail of the last chunk is
// allocated but unused), plus the manual counter tracking bytes embedded
// in each node's Children/Points slices.
func (idx *Index) UsedMemory() int {
	if idx.arena == nil {
		return 0
	}
	return idx.arena.Cap()*nodeBaseSize + int(idx.memCounter)
}

// Save persists the forest topology (scalar parameters, then each tree,
// including leaf point lists) to w. The body is checksummed with CRC32; if
// w also implements io.WriteSeeker, the header is patched with the
// checksum once the body is written so Load can verify it.
func (idx *Index) Save(w io.Writer) error {
	ctx := context.Background()

	vectorCount, err := conv.IntToUint64(idx.data.Len())
	if err != nil {
		err = wrapIoError("save", err)
		idx.opts.logger.LogPersist(ctx, "save", "", err)
		return err
	}
	dimension, err := conv.IntToUint32(idx.data.Dimension())
	if err != nil {
		err = wrapIoError("save", err)
		idx.opts.logger.LogPersist(ctx, "save", "", err)
		return err
	}

	header := &persistence.FileHeader{
		IndexType:   persistence.IndexTypeHierarchical,
		VectorCount: vectorCount,
		Dimension:   dimension,
	}
	headerWriter := persistence.NewBinaryIndexWriter(w)
	if err := headerWriter.WriteHeader(header); err != nil {
		err = wrapIoError("save", err)
		idx.opts.logger.LogPersist(ctx, "save", "", err)
		return err
	}

	compressed, err := persistence.WrapWriter(w, idx.opts.compression)
	if err != nil {
		err = wrapIoError("save", err)
		idx.opts.logger.LogPersist(ctx, "save", "", err)
		return err
	}

	checksummed := persistence.NewChecksumWriter(compressed)
	bw := persistence.NewBinaryIndexWriter(checksummed)

	if err := writeScalarParams(bw, idx.params, idx.memCounter); err != nil {
		_ = compressed.Close()
		err = wrapIoError("save", err)
		idx.opts.logger.LogPersist(ctx, "save", "", err)
		return err
	}
	if err := tree.WriteForest(bw, idx.roots); err != nil {
		_ = compressed.Close()
		err = wrapIoError("save", err)
		idx.opts.logger.LogPersist(ctx, "save", "", err)
		return err
	}
	if err := compressed.Close(); err != nil {
		err = wrapIoError("save", err)
		idx.opts.logger.LogPersist(ctx, "save", "", err)
		return err
	}

	// The checksum covers the uncompressed, logical body (everything
	// written through checksummed above). Only a seekable sink lets us
	// go back and patch the placeholder header written first.
	if seeker, ok := w.(io.WriteSeeker); ok {
		header.Checksum = checksummed.Sum()
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			err = wrapIoError("save", err)
			idx.opts.logger.LogPersist(ctx, "save", "", err)
			return err
		}
		if err := headerWriter.WriteHeader(header); err != nil {
			err = wrapIoError("save", err)
			idx.opts.logger.LogPersist(ctx, "save", "", err)
			return err
		}
		if _, err := seeker.Seek(0, io.SeekEnd); err != nil {
			err = wrapIoError("save", err)
			idx.opts.logger.LogPersist(ctx, "save", "", err)
			return err
		}
	}

	idx.opts.logger.LogPersist(ctx, "save", "", nil)
	return nil
}

// SaveFile saves the index to filename via an atomic temp-file-then-rename
// write. Since the write happens through a buffered, non-seekable writer,
// the saved file carries no checksum; use Save directly against an
// *os.File for checksummed output.
func (idx *Index) SaveFile(filename string) error {
	return persistence.SaveToFile(filename, idx.Save)
}

// LoadFile loads an index previously written by SaveFile or Save.
func LoadFile(filename string, data dataset.Dataset, dist distance.Func, opts ...Option) (*Index, error) {
	var idx *Index
	err := persistence.LoadFromFile(filename, func(r io.Reader) error {
		loaded, loadErr := Load(r, data, dist, opts...)
		if loadErr != nil {
			return loadErr
		}
		idx = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Load reconstructs an Index from a stream written by Save, against the
// given Dataset (which must already contain the same rows the index was
// built over) and distance function. If the stream carries a non-zero
// checksum, the body is verified against it.
func Load(r io.Reader, data dataset.Dataset, dist distance.Func, opts ...Option) (*Index, error) {
	br := persistence.NewBinaryIndexReader(r)
	header, err := br.ReadHeader()
	if err != nil {
		return nil, wrapIoError("load", err)
	}
	if header.IndexType != persistence.IndexTypeHierarchical {
		return nil, wrapIoError("load", persistence.ErrInvalidIndex)
	}

	o := applyOptions(opts)

	decompressed, err := persistence.WrapReader(r, o.compression)
	if err != nil {
		return nil, wrapIoError("load", err)
	}
	defer decompressed.Close()

	checksummed := persistence.NewChecksumReader(decompressed)
	reader := persistence.NewBinaryIndexReader(checksummed)

	params, memoryCounter, err := readScalarParams(reader)
	if err != nil {
		return nil, wrapIoError("load", err)
	}

	a := arena.New[tree.Node](1024)
	roots, err := tree.ReadForest(reader, a)
	if err != nil {
		return nil, wrapIoError("load", err)
	}

	if header.Checksum != 0 {
		if err := checksummed.Verify(header.Checksum); err != nil {
			return nil, wrapIoError("load", err)
		}
	}

	sizeAtBuild, err := conv.Uint64ToInt(header.VectorCount)
	if err != nil {
		return nil, wrapIoError("load", err)
	}

	idx := &Index{
		params:      params,
		dist:        dist,
		data:        data,
		arena:       a,
		roots:       roots,
		removed:     roaring.New(),
		memCounter:  memoryCounter,
		sizeAtBuild: sizeAtBuild,
		opts:        o,
	}
	idx.opts.logger.LogPersist(context.Background(), "load", "", nil)
	return idx, nil
}
