package hkctree

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational
// metrics. Implement this to integrate with a monitoring system.
type MetricsCollector interface {
	// RecordBuild is called after a full forest build.
	RecordBuild(duration time.Duration, points int, err error)
	// RecordAddPoints is called after an incremental AddPoints call.
	// rebuilt reports whether it triggered a full rebuild instead of a
	// per-tree insert.
	RecordAddPoints(count int, rebuilt bool, duration time.Duration, err error)
	// RecordSearch is called after each FindNeighbors call.
	RecordSearch(checks int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(time.Duration, int, error)           {}
func (NoopMetricsCollector) RecordAddPoints(int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	BuildCount          atomic.Int64
	BuildErrors         atomic.Int64
	BuildTotalNanos     atomic.Int64
	AddPointsCount      atomic.Int64
	AddPointsRebuilds   atomic.Int64
	AddPointsErrors     atomic.Int64
	SearchCount       atomic.Int64
	SearchErrors      atomic.Int64
	SearchTotalNanos  atomic.Int64
	SearchTotalChecks atomic.Int64
}

func (b *BasicMetricsCollector) RecordBuild(duration time.Duration, points int, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordAddPoints(count int, rebuilt bool, duration time.Duration, err error) {
	b.AddPointsCount.Add(1)
	if rebuilt {
		b.AddPointsRebuilds.Add(1)
	}
	if err != nil {
		b.AddPointsErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordSearch(checks int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	b.SearchTotalChecks.Add(int64(checks))
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	searchCount := b.SearchCount.Load()
	buildCount := b.BuildCount.Load()

	var avgSearchNanos, avgBuildNanos, avgChecks int64
	if searchCount > 0 {
		avgSearchNanos = b.SearchTotalNanos.Load() / searchCount
		avgChecks = b.SearchTotalChecks.Load() / searchCount
	}
	if buildCount > 0 {
		avgBuildNanos = b.BuildTotalNanos.Load() / buildCount
	}

	return BasicMetricsStats{
		BuildCount:        buildCount,
		BuildErrors:       b.BuildErrors.Load(),
		BuildAvgNanos:     avgBuildNanos,
		AddPointsCount:    b.AddPointsCount.Load(),
		AddPointsRebuilds: b.AddPointsRebuilds.Load(),
		AddPointsErrors:   b.AddPointsErrors.Load(),
		SearchCount:       searchCount,
		SearchErrors:      b.SearchErrors.Load(),
		SearchAvgNanos:    avgSearchNanos,
		SearchAvgChecks:   avgChecks,
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount        int64
	BuildErrors       int64
	BuildAvgNanos     int64
	AddPointsCount    int64
	AddPointsRebuilds int64
	AddPointsErrors   int64
	SearchCount       int64
	SearchErrors      int64
	SearchAvgNanos    int64
	SearchAvgChecks   int64
}
