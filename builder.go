// This file implements the fluent builder API for constructing an Index.
// The builder is immutable - each method returns a new builder with the
// updated configuration, so a partially configured builder can be safely
// reused as a template for several indexes.
package hkctree

import (
	"github.com/gopherforest/hkctree/dataset"
	"github.com/gopherforest/hkctree/distance"
	"github.com/gopherforest/hkctree/internal/chooser"
	"github.com/gopherforest/hkctree/persistence"
)

// NewBuilder creates a Builder for an index of the given vector dimension.
//
// Example:
//
//	idx, err := hkctree.NewBuilder(128).
//	    Branching(16).
//	    Trees(8).
//	    LeafSize(64).
//	    CentersInit(chooser.KMeanspp).
//	    Metric(distance.MetricL2).
//	    Build()
func NewBuilder(dimension int) Builder {
	defaults := DefaultIndexParams()
	return Builder{
		dimension: dimension,
		params:    defaults,
		metric:    distance.MetricL2,
	}
}

// Builder is an immutable fluent builder for Index. Each method returns a
// new Builder with the updated configuration.
type Builder struct {
	dimension int
	params    IndexParams
	metric    distance.Metric
	dist      distance.Func
	data      dataset.Dataset

	logger      *Logger
	metrics     MetricsCollector
	compression persistence.Compression
	randomSeed  *int64
}

// Branching sets the number of children per internal node (also the
// split threshold on insert). Must be >= 2.
func (b Builder) Branching(branching int) Builder {
	b.params.Branching = branching
	return b
}

// LeafSize sets the build-time split threshold: a subset of fewer than
// leafSize points becomes a terminal node without further splitting, so a
// freshly built leaf holds at most leafSize-1 points unless the center
// chooser degenerated.
func (b Builder) LeafSize(leafSize int) Builder {
	b.params.LeafSize = leafSize
	return b
}

// Trees sets the forest size: how many independently seeded trees are
// probed jointly at query time.
func (b Builder) Trees(trees int) Builder {
	b.params.Trees = trees
	return b
}

// CentersInit selects the center-initialization strategy used when
// splitting a node: chooser.Random, chooser.Gonzales, or chooser.KMeanspp.
func (b Builder) CentersInit(strategy chooser.Strategy) Builder {
	b.params.CentersInit = strategy
	return b
}

// Metric selects a built-in distance function by name. Overridden by
// DistanceFunc if both are set.
func (b Builder) Metric(metric distance.Metric) Builder {
	b.metric = metric
	return b
}

// DistanceFunc sets a custom distance function, overriding Metric.
func (b Builder) DistanceFunc(dist distance.Func) Builder {
	b.dist = dist
	return b
}

// Data supplies an existing Dataset to index, instead of the default
// empty dataset.Flat.
func (b Builder) Data(data dataset.Dataset) Builder {
	b.data = data
	return b
}

// Logger configures structured logging for operations.
func (b Builder) Logger(logger *Logger) Builder {
	b.logger = logger
	return b
}

// Metrics configures a metrics collector for monitoring operations.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.metrics = mc
	return b
}

// Compression configures the codec applied to the persistence stream.
func (b Builder) Compression(c persistence.Compression) Builder {
	b.compression = c
	return b
}

// RandomSeed fixes the seed each tree's RNG is derived from, making Build
// deterministic across runs for the same dataset and parameters.
func (b Builder) RandomSeed(seed int64) Builder {
	b.randomSeed = &seed
	return b
}

func (b Builder) options() []Option {
	opts := []Option{
		WithCompression(b.compression),
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}
	if b.randomSeed != nil {
		opts = append(opts, WithRandomSeed(*b.randomSeed))
	}
	return opts
}

func (b Builder) distanceFunc() (distance.Func, error) {
	if b.dist != nil {
		return b.dist, nil
	}
	return distance.Provider(b.metric)
}

// Build constructs an empty Index and performs an initial Build over
// whatever rows Data already contains (zero rows if none was supplied).
func (b Builder) Build() (*Index, error) {
	dist, err := b.distanceFunc()
	if err != nil {
		return nil, err
	}

	data := b.data
	if data == nil {
		data = dataset.NewFlat(b.dimension)
	}

	idx, err := NewWithData(data, b.params, dist, b.options()...)
	if err != nil {
		return nil, err
	}
	if err := idx.Build(); err != nil {
		return nil, err
	}
	return idx, nil
}

// BuildWithData appends rows to the builder's dataset (creating a fresh
// dataset.Flat if none was supplied) and then builds the forest over it.
func (b Builder) BuildWithData(rows [][]float32) (*Index, error) {
	if b.data == nil {
		b.data = dataset.NewFlat(b.dimension)
	}
	if _, err := b.data.Append(rows); err != nil {
		return nil, wrapShapeMismatch(err)
	}
	return b.Build()
}
