package mdlsel

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).
		WithRunID("run-1").
		WithClusters(8)

	ctx := context.Background()
	logger.LogBuild(ctx, 100, "parallel", 4, 3*time.Millisecond, nil)
	logger.LogSearch(ctx, 50, 5, 42.5, time.Second, nil)
	logger.LogTracePersisted(ctx, "events_tabu_search_results_table_8", 50, nil)
	logger.LogBuild(ctx, 100, "sequential", 1, 0, errors.New("cancelled"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)

	for _, l := range lines {
		assert.Equal(t, "run-1", l["run_id"])
		assert.EqualValues(t, 8, l["clusters"])
	}

	assert.Equal(t, "quality matrix built", lines[0]["msg"])
	assert.Equal(t, "parallel", lines[0]["builder"])
	assert.EqualValues(t, 4, lines[0]["workers"])
	assert.Equal(t, "tabu search completed", lines[1]["msg"])
	assert.EqualValues(t, 42.5, lines[1]["best_score"])
	assert.Equal(t, "DEBUG", lines[2]["level"])
	assert.Equal(t, "ERROR", lines[3]["level"])
	assert.Equal(t, "cancelled", lines[3]["error"])
}

func TestNoopLogger(t *testing.T) {
	logger := NoopLogger()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	logger.LogSearch(context.Background(), 1, 1, 1, 0, nil)
}
