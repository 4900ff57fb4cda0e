package mdlsel

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/hupe1980/mdlsel/trace"
)

// MetricsCollector receives operational metrics from a Selector.
// Implement this interface to integrate with monitoring systems; the
// metrics/prometheus package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordBuild is called after each quality matrix build.
	RecordBuild(clusters, events int, duration time.Duration, err error)

	// RecordIteration is called after each tabu search iteration.
	RecordIteration(rec trace.Record, improved bool)

	// RecordSearch is called after each tabu search.
	RecordSearch(iterations int, bestScore float64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordIteration(trace.Record, bool)              {}
func (NoopMetricsCollector) RecordSearch(int, float64, time.Duration, error) {}

// BasicMetricsCollector keeps in-memory counters.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
	BuildTotalNanos  atomic.Int64
	IterationCount   atomic.Int64
	ImprovementCount atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	lastBestScore    atomic.Uint64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_, _ int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(_ trace.Record, improved bool) {
	b.IterationCount.Add(1)
	if improved {
		b.ImprovementCount.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(_ int, bestScore float64, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
		return
	}
	b.lastBestScore.Store(math.Float64bits(bestScore))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:       b.BuildCount.Load(),
		BuildErrors:      b.BuildErrors.Load(),
		BuildAvgNanos:    avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		IterationCount:   b.IterationCount.Load(),
		ImprovementCount: b.ImprovementCount.Load(),
		SearchCount:      b.SearchCount.Load(),
		SearchErrors:     b.SearchErrors.Load(),
		SearchAvgNanos:   avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		LastBestScore:    math.Float64frombits(b.lastBestScore.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount       int64
	BuildErrors      int64
	BuildAvgNanos    int64
	IterationCount   int64
	ImprovementCount int64
	SearchCount      int64
	SearchErrors     int64
	SearchAvgNanos   int64
	LastBestScore    float64
}
