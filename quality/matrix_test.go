package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix([][]float64{
		{5, -1, -1},
		{-1, 4, -2},
		{-1, -2, 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, m.N())
	assert.Equal(t, -2.0, m.At(1, 2))
	assert.Equal(t, 4.0, m.Sum())
	assert.Equal(t, []float64{5, 4, 3}, m.Diagonal())
	assert.Equal(t, []float64{5, -1, -1, -1, 4, -2, -1, -2, 3}, m.Raw())
	assert.Equal(t, []float64{-1, 4, -2}, m.Rows()[1])
	assert.NotEmpty(t, m.String())
}

func TestNewMatrix_CopiesInput(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	m, err := NewMatrix(rows)
	require.NoError(t, err)

	rows[0][0] = 100
	assert.Equal(t, 1.0, m.At(0, 0))

	raw := m.Raw()
	raw[0] = 100
	assert.Equal(t, 1.0, m.At(0, 0))
}

func TestNewMatrix_Errors(t *testing.T) {
	_, err := NewMatrix(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = NewMatrix([][]float64{{1, 2}, {3}})
	assert.Error(t, err)
}
