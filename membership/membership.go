// Package membership computes fuzzy c-means membership weights from distances.
package membership

import (
	"math"

	"github.com/hupe1980/mdlsel/distance"
)

// ZeroDistance is the distance below which an event is considered to sit on a
// centroid. When any cluster is that close, every membership evaluated against
// the event is 0.
const ZeroDistance = 1e-6

// Evaluate returns the fuzzy membership weight of a target cluster for one event.
//
// target is the target cluster's distance to the event and dists holds the
// distance of every cluster (target included) to the same event. The weight is
//
//	1 / Σ_j (target / dists[j])^(2/(fuzzifier-1))
//
// If any dists[j] is below ZeroDistance the result is exactly 0.
func Evaluate(target float64, dists []float64, fuzzifier float64) float64 {
	exp := 2 / (fuzzifier - 1)

	var sum float64
	for _, d := range dists {
		if d < ZeroDistance {
			return 0
		}
		sum += math.Pow(target/d, exp)
	}
	return 1 / sum
}

// Row fills buf with the distance of every cluster in src to event e and
// returns it. buf is grown if it is too small.
func Row(src distance.Source, e int, buf []float64) []float64 {
	k := src.NumClusters()
	if cap(buf) < k {
		buf = make([]float64, k)
	}
	buf = buf[:k]
	for c := range buf {
		buf[c] = src.Distance(c, e)
	}
	return buf
}
