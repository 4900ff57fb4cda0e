package mdlsel

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/mdlsel/dataset"
	"github.com/hupe1980/mdlsel/distance"
	"github.com/hupe1980/mdlsel/quality"
	"github.com/hupe1980/mdlsel/tabu"
	"github.com/hupe1980/mdlsel/trace"
)

// Selector runs MDL cluster selections.
//
// A Selector is immutable after New and safe for concurrent use; every
// Select call owns its own search state.
type Selector struct {
	cfg     Config
	metric  distance.Metric
	compr   trace.Compression
	opts    options
	builder string
}

// New creates a Selector from a validated configuration.
func New(cfg Config, optFns ...Option) (*Selector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Validate already checked both.
	metric, _ := distance.ParseMetric(cfg.Metric)
	compr, _ := trace.ParseCompression(cfg.TraceCompression)

	builder := "sequential"
	if cfg.Parallel {
		builder = "parallel"
	}

	return &Selector{
		cfg:     cfg,
		metric:  metric,
		compr:   compr,
		opts:    applyOptions(optFns),
		builder: builder,
	}, nil
}

// Config returns the selector's configuration.
func (s *Selector) Config() Config { return s.cfg }

// Result is the outcome of a selection.
type Result struct {
	// RunID identifies the run in logs and metrics.
	RunID string `json:"run_id"`

	// Selected is the best inclusion vector found.
	Selected *tabu.Inclusion `json:"selected"`

	// SelectedIndices lists the included clusters in ascending order.
	SelectedIndices []int `json:"selected_indices"`

	Score        float64 `json:"score"`
	InitialScore float64 `json:"initial_score"`

	// BuildTime is the wall time spent building the quality matrix,
	// including the distance precompute when enabled.
	BuildTime time.Duration `json:"build_time"`

	// SearchTime is the wall time spent in the tabu search.
	SearchTime time.Duration `json:"search_time"`

	Iterations   int `json:"iterations"`
	Improvements int `json:"improvements"`
	Exhausted    int `json:"exhausted"`

	// TraceName is the name of the persisted trace, empty without a trace store.
	TraceName string `json:"trace_name,omitempty"`

	Trace  []trace.Record  `json:"-"`
	Matrix *quality.Matrix `json:"-"`
}

// Centroids returns the rows of clusters retained by the selection.
func (r *Result) Centroids(clusters *dataset.Matrix) *dataset.Matrix {
	return clusters.Select(r.SelectedIndices)
}

// Select chooses the subset of cluster centroids that best describes events.
func (s *Selector) Select(ctx context.Context, events, clusters *dataset.Matrix) (*Result, error) {
	if events == nil || clusters == nil || events.Rows() == 0 || clusters.Rows() == 0 {
		return nil, ErrEmptyInput
	}
	if events.Cols() != clusters.Cols() {
		return nil, &ErrDimensionMismatch{Expected: clusters.Cols(), Actual: events.Cols()}
	}

	src, err := distance.NewVectorSource(events.Data(), clusters.Data(), clusters.Cols(), s.metric)
	if err != nil {
		return nil, translateError(err)
	}

	return s.SelectSource(ctx, src, clusters.Cols())
}

// SelectSource runs a selection over an arbitrary distance source, such as a
// precomputed table. dimensions feeds the complexity penalty.
func (s *Selector) SelectSource(ctx context.Context, src distance.Source, dimensions int) (*Result, error) {
	if src.NumClusters() == 0 || src.NumEvents() == 0 {
		return nil, ErrEmptyInput
	}

	runID := uuid.NewString()
	log := s.opts.logger.WithRunID(runID).WithClusters(src.NumClusters()).WithDimension(dimensions)

	m, workers, buildTime, err := s.build(ctx, src, dimensions)
	s.opts.metricsCollector.RecordBuild(src.NumClusters(), src.NumEvents(), buildTime, err)
	log.LogBuild(ctx, src.NumEvents(), s.builder, workers, buildTime, err)
	if err != nil {
		return nil, translateError(err)
	}

	res, searchTime, err := s.search(ctx, m, log)
	bestScore := 0.0
	if res != nil {
		bestScore = res.BestScore
	}
	s.opts.metricsCollector.RecordSearch(s.cfg.TabuIterations, bestScore, searchTime, err)
	if err != nil {
		log.LogSearch(ctx, s.cfg.TabuIterations, 0, 0, searchTime, err)
		return nil, translateError(err)
	}
	log.LogSearch(ctx, s.cfg.TabuIterations, res.Best.Count(), res.BestScore, searchTime, nil)

	out := &Result{
		RunID:           runID,
		Selected:        res.Best,
		SelectedIndices: res.Best.Indices(),
		Score:           res.BestScore,
		InitialScore:    res.InitialScore,
		BuildTime:       buildTime,
		SearchTime:      searchTime,
		Iterations:      len(res.Trace),
		Improvements:    res.Improvements,
		Exhausted:       res.Exhausted,
		Trace:           res.Trace,
		Matrix:          m,
	}

	if s.opts.traceStore != nil {
		name := trace.FileName(s.opts.traceName, m.N(), s.compr)
		err := s.persistTrace(ctx, name, res.Trace)
		log.LogTracePersisted(ctx, name, len(res.Trace), err)
		if err != nil {
			return nil, err
		}
		out.TraceName = name
	}

	return out, nil
}

// build derives the quality matrix and reports the number of goroutines the
// builder used. The elapsed time includes the distance precompute.
func (s *Selector) build(ctx context.Context, src distance.Source, dimensions int) (*quality.Matrix, int, time.Duration, error) {
	p := s.cfg.Params(dimensions)

	var (
		b       quality.Builder
		workers = 1
	)
	if s.cfg.Parallel {
		par, err := quality.NewParallel(p, s.cfg.Workers)
		if err != nil {
			return nil, 0, 0, err
		}
		b, workers = par, par.Workers()
	} else {
		seq, err := quality.NewSequential(p)
		if err != nil {
			return nil, 0, 0, err
		}
		b = seq
	}

	start := time.Now()

	if s.cfg.Precompute {
		if _, ok := src.(*distance.Table); !ok {
			table, err := distance.Precompute(ctx, src, s.cfg.Workers)
			if err != nil {
				return nil, workers, time.Since(start), err
			}
			src = table
		}
	}

	m, err := b.Build(ctx, src)
	return m, workers, time.Since(start), err
}

func (s *Selector) search(ctx context.Context, m *quality.Matrix, log *Logger) (*tabu.Result, time.Duration, error) {
	observers := make([]tabu.Observer, 0, len(s.opts.observers)+1)
	observers = append(observers, tabu.ObserverFunc(func(it tabu.Iteration) {
		s.opts.metricsCollector.RecordIteration(it.Record, it.Improved)
	}))
	observers = append(observers, s.opts.observers...)

	opt, err := tabu.New(func(o *tabu.Options) {
		o.Iterations = s.cfg.TabuIterations
		o.Tenure = s.cfg.TabuTenure
		o.Concurrency = s.cfg.SearchConcurrency
		o.Logger = log.Logger
		o.Observers = observers
	})
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	res, err := opt.Run(ctx, m)
	return res, time.Since(start), err
}

func (s *Selector) persistTrace(ctx context.Context, name string, records []trace.Record) error {
	var buf bytes.Buffer
	if err := trace.WriteAll(&buf, s.compr, records); err != nil {
		return fmt.Errorf("mdlsel: encode trace: %w", err)
	}
	if err := s.opts.traceStore.Put(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("mdlsel: persist trace %s: %w", name, err)
	}
	return nil
}
