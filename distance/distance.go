package distance

import (
	"fmt"
	"math"
)

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Euclidean calculates the L2 distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Euclidean(a, b []float32) float32 {
	return float32(math.Sqrt(float64(SquaredL2(a, b))))
}

// Manhattan calculates the L1 distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Manhattan(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

// Metric represents the distance metric used between events and centroids.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricSquaredL2
	MetricManhattan
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "euclidean"
	case MetricSquaredL2:
		return "squared-l2"
	case MetricManhattan:
		return "manhattan"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseMetric returns the metric for its String form.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", "euclidean", "l2":
		return MetricEuclidean, nil
	case "squared-l2", "sql2":
		return MetricSquaredL2, nil
	case "manhattan", "l1":
		return MetricManhattan, nil
	default:
		return 0, fmt.Errorf("unsupported metric: %q", s)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float32) float32

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricSquaredL2:
		return SquaredL2, nil
	case MetricManhattan:
		return Manhattan, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
