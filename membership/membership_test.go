package membership

import (
	"testing"

	"github.com/hupe1980/mdlsel/distance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_ZeroDistance(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		dists  []float64
	}{
		{"OtherClusterOwnsEvent", 2, []float64{2, 0, 5}},
		{"BelowEpsilon", 3, []float64{3, 5e-7, 1}},
		{"TargetItself", 0, []float64{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, Evaluate(tt.target, tt.dists, 2))
		})
	}
}

func TestEvaluate_Range(t *testing.T) {
	dists := []float64{1, 2, 4, 8}
	for _, m := range []float64{1.5, 2, 3} {
		var total float64
		for _, d := range dists {
			w := Evaluate(d, dists, m)
			assert.GreaterOrEqual(t, w, 0.0)
			assert.LessOrEqual(t, w, 1.0)
			total += w
		}
		// Memberships of one event across all clusters sum to one.
		assert.InDelta(t, 1.0, total, 1e-9)
	}
}

func TestEvaluate_KnownValue(t *testing.T) {
	// m=2 gives exponent 2: 1 / ((1/1)^2 + (1/2)^2) = 0.8
	assert.InDelta(t, 0.8, Evaluate(1, []float64{1, 2}, 2), 1e-12)
	assert.InDelta(t, 0.2, Evaluate(2, []float64{1, 2}, 2), 1e-12)
}

func TestEvaluate_Equidistant(t *testing.T) {
	assert.InDelta(t, 1.0/3, Evaluate(5, []float64{5, 5, 5}, 2), 1e-12)
}

func TestRow(t *testing.T) {
	src, err := distance.NewVectorSource(
		[]float32{0, 0, 3, 4},
		[]float32{0, 0, 3, 4, 6, 8},
		2, distance.MetricEuclidean,
	)
	require.NoError(t, err)

	row := Row(src, 1, nil)
	assert.InDeltaSlice(t, []float64{5, 0, 5}, row, 1e-6)

	buf := make([]float64, 0, 8)
	row = Row(src, 0, buf)
	assert.Len(t, row, 3)
	assert.InDeltaSlice(t, []float64{0, 5, 10}, row, 1e-6)
}
