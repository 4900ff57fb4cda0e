// Package prometheus exports selection metrics to Prometheus.
//
//	import mdlprom "github.com/hupe1980/mdlsel/metrics/prometheus"
//
//	mc, _ := mdlprom.NewCollector(prometheus.DefaultRegisterer, "mdlsel")
//	sel, _ := mdlsel.New(cfg, mdlsel.WithMetricsCollector(mc))
package prometheus

import (
	"time"

	"github.com/hupe1980/mdlsel/trace"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Collector implements mdlsel.MetricsCollector on Prometheus primitives.
type Collector struct {
	buildLatency  *prom.HistogramVec
	searchLatency *prom.HistogramVec
	clusters      prom.Gauge
	events        prom.Gauge
	iterations    prom.Counter
	improvements  prom.Counter
	popcount      prom.Gauge
	bestScore     prom.Gauge
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prom.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		buildLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "quality_build_duration_seconds",
			Help:      "Wall time of quality matrix builds",
			Buckets:   prom.ExponentialBuckets(0.001, 4, 10),
		}, []string{"status"}),
		searchLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "tabu_search_duration_seconds",
			Help:      "Wall time of tabu searches",
			Buckets:   prom.ExponentialBuckets(0.001, 4, 10),
		}, []string{"status"}),
		clusters: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "clusters",
			Help:      "Number of candidate clusters in the last build",
		}),
		events: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "events",
			Help:      "Number of events in the last build",
		}),
		iterations: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tabu_iterations_total",
			Help:      "Tabu search iterations completed",
		}),
		improvements: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "tabu_improvements_total",
			Help:      "Tabu search iterations that raised the best score",
		}),
		popcount: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "tabu_popcount",
			Help:      "Included clusters after the latest iteration",
		}),
		bestScore: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "best_score",
			Help:      "Best score of the last successful search",
		}),
	}

	for _, col := range []prom.Collector{
		c.buildLatency, c.searchLatency, c.clusters, c.events,
		c.iterations, c.improvements, c.popcount, c.bestScore,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordBuild implements mdlsel.MetricsCollector.
func (c *Collector) RecordBuild(clusters, events int, d time.Duration, err error) {
	c.buildLatency.WithLabelValues(status(err)).Observe(d.Seconds())
	c.clusters.Set(float64(clusters))
	c.events.Set(float64(events))
}

// RecordIteration implements mdlsel.MetricsCollector.
func (c *Collector) RecordIteration(rec trace.Record, improved bool) {
	c.iterations.Inc()
	if improved {
		c.improvements.Inc()
	}
	c.popcount.Set(float64(rec.Popcount))
}

// RecordSearch implements mdlsel.MetricsCollector.
func (c *Collector) RecordSearch(_ int, bestScore float64, d time.Duration, err error) {
	c.searchLatency.WithLabelValues(status(err)).Observe(d.Seconds())
	if err == nil {
		c.bestScore.Set(bestScore)
	}
}
