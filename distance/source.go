package distance

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrDimensionMismatch is returned when events and clusters disagree on dimensionality.
	ErrDimensionMismatch = errors.New("distance: dimension mismatch")

	// ErrInvalidTable is returned when a precomputed table has the wrong shape.
	ErrInvalidTable = errors.New("distance: invalid table shape")
)

// Source returns the distance between a cluster centroid and an event.
//
// Implementations must be safe for concurrent use by multiple goroutines.
// Distances are non-negative.
type Source interface {
	// Distance returns the distance between cluster c and event e.
	Distance(c, e int) float64

	// NumClusters returns the number of clusters.
	NumClusters() int

	// NumEvents returns the number of events.
	NumEvents() int
}

// VectorSource computes distances on demand from flattened row-major vectors.
type VectorSource struct {
	events   []float32
	clusters []float32
	dim      int
	fn       Func
}

// NewVectorSource creates a Source over flattened events (numEvents*dim) and
// clusters (numClusters*dim).
func NewVectorSource(events, clusters []float32, dim int, metric Metric) (*VectorSource, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", ErrDimensionMismatch, dim)
	}
	if len(events)%dim != 0 {
		return nil, fmt.Errorf("%w: %d event values not divisible by %d", ErrDimensionMismatch, len(events), dim)
	}
	if len(clusters)%dim != 0 {
		return nil, fmt.Errorf("%w: %d cluster values not divisible by %d", ErrDimensionMismatch, len(clusters), dim)
	}

	fn, err := Provider(metric)
	if err != nil {
		return nil, err
	}

	return &VectorSource{
		events:   events,
		clusters: clusters,
		dim:      dim,
		fn:       fn,
	}, nil
}

// Distance implements Source.
func (s *VectorSource) Distance(c, e int) float64 {
	center := s.clusters[c*s.dim : (c+1)*s.dim]
	vec := s.events[e*s.dim : (e+1)*s.dim]
	return float64(s.fn(center, vec))
}

// NumClusters implements Source.
func (s *VectorSource) NumClusters() int { return len(s.clusters) / s.dim }

// NumEvents implements Source.
func (s *VectorSource) NumEvents() int { return len(s.events) / s.dim }

// Dimensions returns the vector dimensionality.
func (s *VectorSource) Dimensions() int { return s.dim }

// Table is a dense clusters×events distance table.
type Table struct {
	data      []float64
	clusters  int
	numEvents int
}

// NewTable wraps a row-major clusters×events table.
// The slice is used directly and must not be modified afterwards.
func NewTable(data []float64, clusters, events int) (*Table, error) {
	if clusters < 0 || events < 0 || len(data) != clusters*events {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrInvalidTable, len(data), clusters, events)
	}
	return &Table{data: data, clusters: clusters, numEvents: events}, nil
}

// Precompute evaluates every distance of src into a Table.
// Cluster rows are computed concurrently with at most workers goroutines;
// workers <= 0 uses GOMAXPROCS.
func Precompute(ctx context.Context, src Source, workers int) (*Table, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	k, n := src.NumClusters(), src.NumEvents()
	data := make([]float64, k*n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for c := 0; c < k; c++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := data[c*n : (c+1)*n]
			for e := range row {
				row[e] = src.Distance(c, e)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Table{data: data, clusters: k, numEvents: n}, nil
}

// Distance implements Source.
func (t *Table) Distance(c, e int) float64 {
	return t.data[c*t.numEvents+e]
}

// NumClusters implements Source.
func (t *Table) NumClusters() int { return t.clusters }

// NumEvents implements Source.
func (t *Table) NumEvents() int { return t.numEvents }
