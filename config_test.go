package mdlsel

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	p := cfg.Params(7)
	assert.Equal(t, 7, p.Dimensions)
	assert.Equal(t, cfg.Fuzzifier, p.Fuzzifier)
	assert.Equal(t, cfg.K3, p.K3)
	require.NoError(t, p.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"FuzzifierOne", func(c *Config) { c.Fuzzifier = 1 }, "fuzzifier"},
		{"FuzzifierInf", func(c *Config) { c.Fuzzifier = math.Inf(1) }, "fuzzifier"},
		{"NegativeThreshold", func(c *Config) { c.Threshold = -0.1 }, "threshold"},
		{"ThresholdOne", func(c *Config) { c.Threshold = 1 }, "threshold"},
		{"NaNK2", func(c *Config) { c.K2 = math.NaN() }, "k2"},
		{"NegativeIterations", func(c *Config) { c.TabuIterations = -1 }, "tabu_iterations"},
		{"NegativeTenure", func(c *Config) { c.TabuTenure = -1 }, "tabu_tenure"},
		{"NegativeWorkers", func(c *Config) { c.Workers = -2 }, "workers"},
		{"UnknownMetric", func(c *Config) { c.Metric = "cosine" }, "metric"},
		{"UnknownCompression", func(c *Config) { c.TraceCompression = "gzip" }, "trace_compression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			var cfgErr *ErrInvalidConfig
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	in := `
fuzzifier: 1.5
k3: 0
tabu_iterations: 20
metric: manhattan
parallel: true
trace_compression: zstd
`
	cfg, err := LoadConfig(strings.NewReader(in))
	require.NoError(t, err)

	want := DefaultConfig()
	want.Fuzzifier = 1.5
	want.K3 = 0
	want.TabuIterations = 20
	want.Metric = "manhattan"
	want.Parallel = true
	want.TraceCompression = "zstd"
	assert.Equal(t, want, cfg)
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("tabu_tenure: 3\nunknown_key: 1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(strings.NewReader("threshold: 2\n"))
	var cfgErr *ErrInvalidConfig
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "threshold", cfgErr.Field)
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 3
	cfg.Precompute = true

	data, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "tabu_tenure: 5")

	got, err := LoadConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
