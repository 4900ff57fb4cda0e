// Package tabu scores inclusion vectors against a quality matrix and searches
// them with a fixed-length tabu search.
package tabu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hupe1980/mdlsel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var (
	// ErrInvalidOptions is returned when Options fail validation.
	ErrInvalidOptions = errors.New("tabu: invalid options")

	// ErrEmpty is returned when the matrix has no clusters.
	ErrEmpty = errors.New("tabu: empty matrix")
)

// NoFlip is the Flipped value of an iteration that found no candidate.
const NoFlip = -1

// Iteration describes one completed search iteration.
type Iteration struct {
	trace.Record

	// Flipped is the cluster flipped in this iteration, or NoFlip.
	Flipped int

	// Improved reports whether the iteration produced a new best score.
	Improved bool

	// TabuBefore holds the tenure countdowns at the start of the iteration.
	TabuBefore []int
}

// Observer is notified after every iteration.
type Observer interface {
	OnIteration(it Iteration)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(it Iteration)

// OnIteration implements Observer.
func (f ObserverFunc) OnIteration(it Iteration) { f(it) }

// Options configures an Optimizer.
type Options struct {
	// Iterations is the fixed number of search iterations.
	Iterations int

	// Tenure is how many iterations a flipped cluster stays tabu.
	Tenure int

	// Concurrency is the number of goroutines scoring candidate flips within
	// one iteration. Values <= 1 score sequentially. The selected flip does not
	// depend on this value.
	Concurrency int

	// Logger receives sampled progress at debug level. Nil disables logging.
	Logger *slog.Logger

	// ProgressInterval is the minimum time between progress log lines.
	ProgressInterval time.Duration

	// Observers are notified after every iteration, in order.
	Observers []Observer
}

// DefaultOptions are the options used by New before optFns are applied.
var DefaultOptions = Options{
	Iterations:       100,
	Tenure:           5,
	Concurrency:      1,
	ProgressInterval: time.Second,
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.Iterations < 0 {
		return fmt.Errorf("%w: iterations must be >= 0, got %d", ErrInvalidOptions, o.Iterations)
	}
	if o.Tenure < 0 {
		return fmt.Errorf("%w: tenure must be >= 0, got %d", ErrInvalidOptions, o.Tenure)
	}
	return nil
}

// Optimizer runs tabu searches over inclusion vectors.
//
// An Optimizer holds configuration only; each Run owns its own search state,
// so one Optimizer may serve concurrent runs.
type Optimizer struct {
	opts Options
}

// New creates an Optimizer.
func New(optFns ...func(o *Options)) (*Optimizer, error) {
	opts := DefaultOptions
	opts.Observers = nil

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Optimizer{opts: opts}, nil
}

// Options returns the optimizer's options.
func (o *Optimizer) Options() Options { return o.opts }

// Result is the outcome of a search.
type Result struct {
	// Best is the best configuration seen. It is the initial all-included
	// configuration unless some iteration strictly improved on it.
	Best *Inclusion

	// BestScore is Score(matrix, Best).
	BestScore float64

	// InitialScore is the score of the all-included configuration.
	InitialScore float64

	// Final is the configuration after the last iteration.
	Final *Inclusion

	// Trace holds one record per iteration.
	Trace []trace.Record

	// Improvements counts iterations that raised the best score.
	Improvements int

	// Exhausted counts iterations that found no candidate flip.
	Exhausted int
}

// search is the mutable state of one Run.
type search struct {
	m         Matrix
	current   *Inclusion
	memory    *Memory
	best      *Inclusion
	bestScore float64
	scores    []float64
}

// Run searches for the best inclusion vector of m.
func (o *Optimizer) Run(ctx context.Context, m Matrix) (*Result, error) {
	n := m.N()
	if n == 0 {
		return nil, ErrEmpty
	}

	s := &search{
		m:       m,
		current: AllIncluded(n),
		memory:  NewMemory(n),
		scores:  make([]float64, n),
	}
	s.bestScore = Score(m, s.current)
	s.best = s.current.Clone()

	res := &Result{
		InitialScore: s.bestScore,
		Trace:        make([]trace.Record, 0, o.opts.Iterations),
	}

	progress := rate.Sometimes{Interval: o.opts.ProgressInterval}
	last := s.bestScore

	for it := 0; it < o.opts.Iterations; it++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var before []int
		if len(o.opts.Observers) > 0 {
			before = s.memory.Snapshot()
		}

		idx, score, err := o.step(ctx, s)
		if err != nil {
			return nil, err
		}

		improved := false
		if idx == NoFlip {
			res.Exhausted++
		} else {
			s.current.Flip(idx)
			s.memory.Set(idx, o.opts.Tenure)
			last = score

			if score > s.bestScore {
				s.bestScore = score
				s.best = s.current.Clone()
				res.Improvements++
				improved = true
			}
		}

		rec := trace.Record{Iteration: it, Popcount: s.current.Count(), Score: last}
		res.Trace = append(res.Trace, rec)

		for _, obs := range o.opts.Observers {
			obs.OnIteration(Iteration{Record: rec, Flipped: idx, Improved: improved, TabuBefore: before})
		}

		progress.Do(func() {
			o.opts.Logger.Debug("tabu search progress",
				"iteration", it,
				"popcount", rec.Popcount,
				"score", rec.Score,
				"best", s.bestScore,
			)
		})
	}

	res.Best = s.best
	res.BestScore = s.bestScore
	res.Final = s.current.Clone()

	return res, nil
}

// step scores every non-tabu single flip of the current configuration and
// returns the first index with the strictly highest candidate score. Tabu
// clusters have their tenure counted down instead. It returns NoFlip when no
// candidate qualifies.
func (o *Optimizer) step(ctx context.Context, s *search) (int, float64, error) {
	n := s.current.Len()

	open := make([]int, 0, n)
	for j := 0; j < n; j++ {
		if s.memory.Tabu(j) {
			s.memory.Decrement(j)
			continue
		}
		open = append(open, j)
	}

	if err := o.scoreFlips(ctx, s, open); err != nil {
		return NoFlip, 0, err
	}

	bestIdx := NoFlip
	best := math.Inf(-1)
	for _, j := range open {
		score := s.scores[j]
		if score > best && IsCandidateScore(score) {
			best = score
			bestIdx = j
		}
	}

	return bestIdx, best, nil
}

// scoreFlips fills s.scores[j] with the score of flipping j, for each j in open.
func (o *Optimizer) scoreFlips(ctx context.Context, s *search, open []int) error {
	if o.opts.Concurrency <= 1 || len(open) < 2 {
		for _, j := range open {
			s.current.Flip(j)
			s.scores[j] = Score(s.m, s.current)
			s.current.Flip(j)
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.Concurrency)

	for _, j := range open {
		candidate := s.current.Clone()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			candidate.Flip(j)
			s.scores[j] = Score(s.m, candidate)
			return nil
		})
	}

	return g.Wait()
}
