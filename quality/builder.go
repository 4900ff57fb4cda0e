package quality

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hupe1980/mdlsel/distance"
	"github.com/hupe1980/mdlsel/membership"
	"golang.org/x/sync/errgroup"
)

// Builder produces a quality matrix from a distance source.
//
// Implementations must be safe for concurrent use; Build does not retain src.
type Builder interface {
	Build(ctx context.Context, src distance.Source) (*Matrix, error)
}

// Sequential computes each cell in its own pass over the events.
type Sequential struct {
	params Params
}

// NewSequential creates a Sequential builder.
func NewSequential(p Params) (*Sequential, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Sequential{params: p}, nil
}

// Params returns the builder's parameters.
func (b *Sequential) Params() Params { return b.params }

// Build implements Builder.
func (b *Sequential) Build(ctx context.Context, src distance.Source) (*Matrix, error) {
	n := src.NumClusters()
	if n == 0 {
		return nil, ErrEmpty
	}

	m := newMatrix(n)
	row := make([]float64, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if i == j {
				m.set(i, j, b.self(src, i, row))
			} else {
				m.set(i, j, b.pair(src, i, j, row))
			}
		}
	}

	return m, nil
}

// self accumulates the diagonal term of cluster i.
func (b *Sequential) self(src distance.Source, i int, row []float64) float64 {
	p := b.params

	var errSum, members float64
	for e := 0; e < src.NumEvents(); e++ {
		row = membership.Row(src, e, row)
		d := row[i]
		w := membership.Evaluate(d, row, p.Fuzzifier)
		if w > p.Threshold {
			errSum += w * w * d * d
			members++
		}
	}

	return p.selfTerm(members, errSum)
}

// pair accumulates the off-diagonal term of (i, j).
func (b *Sequential) pair(src distance.Source, i, j int, row []float64) float64 {
	p := b.params

	var errI, errJ, shared float64
	for e := 0; e < src.NumEvents(); e++ {
		row = membership.Row(src, e, row)

		di := row[i]
		wi := membership.Evaluate(di, row, p.Fuzzifier)
		if wi > p.Threshold {
			errI += wi * wi * di * di
		}

		dj := row[j]
		wj := membership.Evaluate(dj, row, p.Fuzzifier)
		if wj > p.Threshold {
			errJ += wj * wj * dj * dj
		}

		if wi > p.Threshold && wj > p.Threshold {
			shared++
		}
	}

	return p.pairTerm(shared, errI, errJ)
}

// Parallel makes one batched pass over the events, split into contiguous
// chunks processed concurrently.
type Parallel struct {
	params  Params
	workers int
}

// NewParallel creates a Parallel builder.
// workers <= 0 uses GOMAXPROCS.
func NewParallel(p Params, workers int) (*Parallel, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Parallel{params: p, workers: workers}, nil
}

// Params returns the builder's parameters.
func (b *Parallel) Params() Params { return b.params }

// Workers returns the configured concurrency.
func (b *Parallel) Workers() int { return b.workers }

// accumulator holds per-cluster and per-pair sums for a range of events.
type accumulator struct {
	n       int
	errs    []float64
	members []float64
	shared  []float64 // n*n, row-major
}

func newAccumulator(n int) *accumulator {
	return &accumulator{
		n:       n,
		errs:    make([]float64, n),
		members: make([]float64, n),
		shared:  make([]float64, n*n),
	}
}

func (a *accumulator) merge(o *accumulator) {
	for i := range a.errs {
		a.errs[i] += o.errs[i]
		a.members[i] += o.members[i]
	}
	for i := range a.shared {
		a.shared[i] += o.shared[i]
	}
}

// cancelCheckInterval is how many events a worker processes between context checks.
const cancelCheckInterval = 1024

// Build implements Builder.
func (b *Parallel) Build(ctx context.Context, src distance.Source) (*Matrix, error) {
	n := src.NumClusters()
	if n == 0 {
		return nil, ErrEmpty
	}
	numEvents := src.NumEvents()

	chunks := b.workers
	if chunks > numEvents {
		chunks = numEvents
	}
	if chunks < 1 {
		chunks = 1
	}
	chunkSize := (numEvents + chunks - 1) / chunks

	parts := make([]*accumulator, chunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for c := 0; c < chunks; c++ {
		start := c * chunkSize
		end := min(start+chunkSize, numEvents)

		g.Go(func() error {
			acc, err := b.accumulate(ctx, src, start, end)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", c, err)
			}
			parts[c] = acc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newAccumulator(n)
	for _, part := range parts {
		total.merge(part)
	}

	p := b.params
	m := newMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				m.set(i, i, p.selfTerm(total.members[i], total.errs[i]))
			} else {
				m.set(i, j, p.pairTerm(total.shared[i*n+j], total.errs[i], total.errs[j]))
			}
		}
	}

	return m, nil
}

func (b *Parallel) accumulate(ctx context.Context, src distance.Source, start, end int) (*accumulator, error) {
	p := b.params
	n := src.NumClusters()
	acc := newAccumulator(n)

	row := make([]float64, n)
	members := make([]int, 0, n)

	for e := start; e < end; e++ {
		if (e-start)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row = membership.Row(src, e, row)
		members = members[:0]

		for c, d := range row {
			w := membership.Evaluate(d, row, p.Fuzzifier)
			if w > p.Threshold {
				acc.errs[c] += w * w * d * d
				acc.members[c]++
				members = append(members, c)
			}
		}

		for _, a := range members {
			for _, bb := range members {
				if a != bb {
					acc.shared[a*n+bb]++
				}
			}
		}
	}

	return acc, nil
}
