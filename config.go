package mdlsel

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/mdlsel/distance"
	"github.com/hupe1980/mdlsel/quality"
	"github.com/hupe1980/mdlsel/trace"
	"gopkg.in/yaml.v3"
)

// Config holds the numeric run parameters of a selection.
//
// The cluster count, event count and dimensionality are not configured;
// they come from the inputs.
type Config struct {
	// Fuzzifier is the fuzzy c-means exponent m. Must be > 1.
	Fuzzifier float64 `yaml:"fuzzifier" json:"fuzzifier"`

	// Threshold is the membership an event needs to count toward a cluster.
	Threshold float64 `yaml:"threshold" json:"threshold"`

	// K1 rewards members, K2 penalises error and K3 penalises dimensionality.
	K1 float64 `yaml:"k1" json:"k1"`
	K2 float64 `yaml:"k2" json:"k2"`
	K3 float64 `yaml:"k3" json:"k3"`

	// TabuIterations is the fixed number of search iterations.
	TabuIterations int `yaml:"tabu_iterations" json:"tabu_iterations"`

	// TabuTenure is how many iterations a flipped cluster stays tabu.
	TabuTenure int `yaml:"tabu_tenure" json:"tabu_tenure"`

	// Metric names the distance function: euclidean, squared-l2 or manhattan.
	Metric string `yaml:"metric" json:"metric"`

	// Parallel builds the quality matrix with the parallel builder.
	Parallel bool `yaml:"parallel" json:"parallel"`

	// Workers bounds parallel work. Zero means GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers"`

	// Precompute materialises the cluster/event distance table before the
	// build instead of computing distances on demand.
	Precompute bool `yaml:"precompute" json:"precompute"`

	// SearchConcurrency is the number of goroutines scoring candidate flips.
	SearchConcurrency int `yaml:"search_concurrency" json:"search_concurrency"`

	// TraceCompression is none, zstd or lz4.
	TraceCompression string `yaml:"trace_compression" json:"trace_compression"`
}

// DefaultConfig returns the parameters used when none are given.
func DefaultConfig() Config {
	return Config{
		Fuzzifier:         2,
		Threshold:         0.1,
		K1:                1,
		K2:                0.01,
		K3:                1.5,
		TabuIterations:    100,
		TabuTenure:        5,
		Metric:            distance.MetricEuclidean.String(),
		SearchConcurrency: 1,
		TraceCompression:  trace.CompressionNone.String(),
	}
}

// Validate checks the configuration and returns an *ErrInvalidConfig
// naming the first offending field.
func (c Config) Validate() error {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	checks := []struct {
		field  string
		ok     bool
		reason string
	}{
		{"fuzzifier", c.Fuzzifier > 1 && finite(c.Fuzzifier), fmt.Sprintf("must be > 1, got %v", c.Fuzzifier)},
		{"threshold", c.Threshold >= 0 && c.Threshold < 1, fmt.Sprintf("must be in [0, 1), got %v", c.Threshold)},
		{"k1", finite(c.K1), "must be finite"},
		{"k2", finite(c.K2), "must be finite"},
		{"k3", finite(c.K3), "must be finite"},
		{"tabu_iterations", c.TabuIterations >= 0, fmt.Sprintf("must be >= 0, got %d", c.TabuIterations)},
		{"tabu_tenure", c.TabuTenure >= 0, fmt.Sprintf("must be >= 0, got %d", c.TabuTenure)},
		{"workers", c.Workers >= 0, fmt.Sprintf("must be >= 0, got %d", c.Workers)},
		{"search_concurrency", c.SearchConcurrency >= 0, fmt.Sprintf("must be >= 0, got %d", c.SearchConcurrency)},
	}
	for _, ch := range checks {
		if !ch.ok {
			return &ErrInvalidConfig{Field: ch.field, Reason: ch.reason}
		}
	}

	if _, err := distance.ParseMetric(c.Metric); err != nil {
		return &ErrInvalidConfig{Field: "metric", Reason: err.Error(), cause: err}
	}
	if _, err := trace.ParseCompression(c.TraceCompression); err != nil {
		return &ErrInvalidConfig{Field: "trace_compression", Reason: err.Error(), cause: err}
	}
	return nil
}

// Params returns the quality matrix parameters for inputs of the given
// dimensionality.
func (c Config) Params(dimensions int) quality.Params {
	return quality.Params{
		Fuzzifier:  c.Fuzzifier,
		Threshold:  c.Threshold,
		K1:         c.K1,
		K2:         c.K2,
		K3:         c.K3,
		Dimensions: dimensions,
	}
}

// LoadConfig decodes YAML over DefaultConfig. Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("mdlsel: decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// YAML encodes c as YAML.
func (c Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
