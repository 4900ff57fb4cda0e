package mdlsel

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/mdlsel/trace"
	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	var mc BasicMetricsCollector

	assert.Equal(t, BasicMetricsStats{}, mc.GetStats())

	mc.RecordBuild(4, 100, 10*time.Millisecond, nil)
	mc.RecordBuild(4, 100, 30*time.Millisecond, errors.New("boom"))
	mc.RecordIteration(trace.Record{Iteration: 0}, true)
	mc.RecordIteration(trace.Record{Iteration: 1}, false)
	mc.RecordSearch(2, 12.5, time.Millisecond, nil)
	mc.RecordSearch(2, 99, time.Millisecond, errors.New("cancelled"))

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.BuildCount)
	assert.Equal(t, int64(1), stats.BuildErrors)
	assert.Equal(t, (20 * time.Millisecond).Nanoseconds(), stats.BuildAvgNanos)
	assert.Equal(t, int64(2), stats.IterationCount)
	assert.Equal(t, int64(1), stats.ImprovementCount)
	assert.Equal(t, int64(2), stats.SearchCount)
	assert.Equal(t, int64(1), stats.SearchErrors)
	assert.Equal(t, 12.5, stats.LastBestScore)
}

func TestBasicMetricsCollector_Concurrent(t *testing.T) {
	var mc BasicMetricsCollector

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				mc.RecordIteration(trace.Record{}, false)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(800), mc.GetStats().IterationCount)
}

func TestNoopMetricsCollector(t *testing.T) {
	var mc MetricsCollector = NoopMetricsCollector{}
	mc.RecordBuild(1, 1, 0, nil)
	mc.RecordIteration(trace.Record{}, true)
	mc.RecordSearch(1, 0, 0, nil)
}
