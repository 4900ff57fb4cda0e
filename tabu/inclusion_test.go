package tabu

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInclusion(t *testing.T) {
	v := AllIncluded(4)
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, 4, v.Count())
	assert.Equal(t, "1111", v.String())

	v.Flip(1)
	v.Flip(3)
	assert.False(t, v.Included(1))
	assert.True(t, v.Included(2))
	assert.Equal(t, 2, v.Count())
	assert.Equal(t, []int{0, 2}, v.Indices())
	assert.Equal(t, []bool{true, false, true, false}, v.Flags())
	assert.Equal(t, "1010", v.String())

	v.Flip(1)
	assert.Equal(t, "1110", v.String())

	e := NewInclusion(3)
	assert.Equal(t, 0, e.Count())
	assert.Empty(t, e.Indices())
	assert.Equal(t, "000", e.String())
}

func TestInclusion_CloneIsIndependent(t *testing.T) {
	v := InclusionFromFlags([]bool{true, false, true})
	c := v.Clone()
	require.True(t, v.Equal(c))

	c.Flip(1)
	assert.False(t, v.Included(1))
	assert.False(t, v.Equal(c))

	b := v.Bitmap()
	b.Add(1)
	assert.False(t, v.Included(1))

	assert.False(t, NewInclusion(2).Equal(NewInclusion(3)))
}

func TestInclusion_OutOfRangePanics(t *testing.T) {
	v := NewInclusion(2)
	assert.Panics(t, func() { v.Flip(2) })
	assert.Panics(t, func() { v.Included(-1) })
}

func TestInclusion_JSON(t *testing.T) {
	v := InclusionFromFlags([]bool{false, true, true, false})

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `[0,1,1,0]`, string(data))

	var got Inclusion
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, v.Equal(&got))

	assert.Error(t, json.Unmarshal([]byte(`[0,2]`), &got))
}

func TestMemory(t *testing.T) {
	m := NewMemory(3)
	assert.False(t, m.AllTabu())

	m.Set(0, 2)
	m.Set(1, -4)
	assert.True(t, m.Tabu(0))
	assert.False(t, m.Tabu(1))
	assert.Equal(t, 0, m.Remaining(1))

	m.Decrement(0)
	m.Decrement(1)
	assert.Equal(t, []int{1, 0, 0}, m.Snapshot())

	m.Set(1, 1)
	m.Set(2, 1)
	assert.True(t, m.AllTabu())

	snap := m.Snapshot()
	snap[0] = 9
	assert.Equal(t, 1, m.Remaining(0))
}

func TestScore(t *testing.T) {
	m := mustMatrix(t, [][]float64{
		{5, -1, -1},
		{-1, 4, -2},
		{-1, -2, 3},
	})

	assert.Equal(t, m.Sum(), Score(m, AllIncluded(3)))
	assert.Equal(t, 0.0, Score(m, NewInclusion(3)))
	assert.Equal(t, 3.0, Score(m, InclusionFromFlags([]bool{true, false, false})))
	assert.Equal(t, 4.0, Score(m, InclusionFromFlags([]bool{true, true, false})))
}

func TestScore_SumsColumns(t *testing.T) {
	// Column 0 sums to 4, row 0 to 3.
	m := mustMatrix(t, [][]float64{
		{1, 2},
		{3, 4},
	})

	assert.Equal(t, 4.0, Score(m, InclusionFromFlags([]bool{true, false})))
	assert.Equal(t, 6.0, Score(m, InclusionFromFlags([]bool{false, true})))
}

func TestIsCandidateScore(t *testing.T) {
	assert.False(t, IsCandidateScore(0))
	assert.True(t, IsCandidateScore(-1))
	assert.True(t, IsCandidateScore(1e-300))
}
