package mdlsel

import (
	"log/slog"

	"github.com/hupe1980/mdlsel/blobstore"
	"github.com/hupe1980/mdlsel/tabu"
)

// DefaultTraceName is the input identifier used in trace file names when
// none is configured.
const DefaultTraceName = "mdlsel"

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	traceStore       blobstore.BlobStore
	traceName        string
	observers        []tabu.Observer
}

// Option configures a Selector.
type Option func(*options)

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := mdlsel.NewJSONLogger(slog.LevelInfo)
//	sel, _ := mdlsel.New(cfg, mdlsel.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
//	metrics := &mdlsel.BasicMetricsCollector{}
//	sel, _ := mdlsel.New(cfg, mdlsel.WithMetricsCollector(metrics))
//	// ... run selections ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithTraceStore persists the search trace of every run to store.
// Without a store the trace is only returned in the Result.
func WithTraceStore(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.traceStore = store
	}
}

// WithTraceName sets the input identifier used to name persisted traces,
// typically the events file name.
func WithTraceName(input string) Option {
	return func(o *options) {
		o.traceName = input
	}
}

// WithObserver adds an observer that is notified after every search iteration.
func WithObserver(obs tabu.Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		traceName: DefaultTraceName,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.traceName == "" {
		o.traceName = DefaultTraceName
	}
	return o
}
