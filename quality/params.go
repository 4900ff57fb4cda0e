package quality

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when Params fail validation.
var ErrInvalidParams = errors.New("quality: invalid params")

// Params holds the scoring constants of the quality matrix.
// A Params value is never mutated by this package.
type Params struct {
	// Fuzzifier is the fuzzy c-means exponent. Must be > 1.
	Fuzzifier float64

	// Threshold is the membership weight an event must exceed to count as a
	// member of a cluster.
	Threshold float64

	// K1 weights member counts.
	K1 float64

	// K2 weights membership-weighted squared error.
	K2 float64

	// K3 weights the model complexity term (per dimension).
	K3 float64

	// Dimensions is the event dimensionality.
	Dimensions int
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if !(p.Fuzzifier > 1) || math.IsInf(p.Fuzzifier, 0) {
		return fmt.Errorf("%w: fuzzifier must be > 1, got %v", ErrInvalidParams, p.Fuzzifier)
	}
	if p.Threshold < 0 || p.Threshold >= 1 || math.IsNaN(p.Threshold) {
		return fmt.Errorf("%w: threshold must be in [0, 1), got %v", ErrInvalidParams, p.Threshold)
	}
	if p.Dimensions <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %d", ErrInvalidParams, p.Dimensions)
	}
	weights := []struct {
		name string
		v    float64
	}{{"k1", p.K1}, {"k2", p.K2}, {"k3", p.K3}}
	for _, k := range weights {
		if math.IsNaN(k.v) || math.IsInf(k.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParams, k.name, k.v)
		}
	}
	return nil
}

func (p Params) selfTerm(members, errSum float64) float64 {
	return p.K1*members - p.K2*errSum - p.K3*float64(p.Dimensions)
}

func (p Params) pairTerm(shared, errI, errJ float64) float64 {
	return -p.K1*shared + p.K2*math.Max(errI, errJ)
}
