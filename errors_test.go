package mdlsel

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hupe1980/mdlsel/distance"
	"github.com/hupe1980/mdlsel/quality"
	"github.com/hupe1980/mdlsel/tabu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	t.Run("Empty", func(t *testing.T) {
		for _, cause := range []error{quality.ErrEmpty, tabu.ErrEmpty} {
			err := translateError(cause)
			assert.ErrorIs(t, err, ErrEmptyInput)
			assert.ErrorIs(t, err, cause)
		}
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		err := translateError(fmt.Errorf("%w: 3 values", distance.ErrDimensionMismatch))

		var dimErr *ErrDimensionMismatch
		require.ErrorAs(t, err, &dimErr)
		assert.ErrorIs(t, err, distance.ErrDimensionMismatch)
	})

	t.Run("InvalidParams", func(t *testing.T) {
		err := translateError(fmt.Errorf("%w: fuzzifier", quality.ErrInvalidParams))

		var cfgErr *ErrInvalidConfig
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "params", cfgErr.Field)
		assert.ErrorIs(t, err, quality.ErrInvalidParams)
	})

	t.Run("InvalidOptions", func(t *testing.T) {
		err := translateError(tabu.ErrInvalidOptions)

		var cfgErr *ErrInvalidConfig
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "tabu", cfgErr.Field)
	})

	t.Run("Passthrough", func(t *testing.T) {
		other := errors.New("boom")
		assert.Equal(t, other, translateError(other))
	})
}

func TestErrorMessages(t *testing.T) {
	dimErr := &ErrDimensionMismatch{Expected: 4, Actual: 3}
	assert.Equal(t, "mdlsel: dimension mismatch: clusters have 4, events have 3", dimErr.Error())
	assert.NoError(t, errors.Unwrap(dimErr))

	cfgErr := &ErrInvalidConfig{Field: "k1", Reason: "must be finite"}
	assert.Equal(t, "mdlsel: invalid config k1: must be finite", cfgErr.Error())
}
