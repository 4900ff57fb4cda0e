package quality

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrEmpty is returned when a matrix would have no clusters.
var ErrEmpty = errors.New("quality: no clusters")

// Matrix is an immutable N×N quality matrix.
//
// Entry (i, j) is stored at row i, column j. The matrix is not symmetric in
// general.
type Matrix struct {
	d *mat.Dense
	n int
}

func newMatrix(n int) *Matrix {
	return &Matrix{d: mat.NewDense(n, n, nil), n: n}
}

// NewMatrix creates a Matrix from square row-major rows.
// The input is copied.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrEmpty
	}

	data := make([]float64, 0, n*n)
	for i, r := range rows {
		if len(r) != n {
			return nil, fmt.Errorf("quality: row %d has %d entries, want %d", i, len(r), n)
		}
		data = append(data, r...)
	}

	return &Matrix{d: mat.NewDense(n, n, data), n: n}, nil
}

// N returns the number of clusters.
func (m *Matrix) N() int { return m.n }

// At returns entry (i, j).
func (m *Matrix) At(i, j int) float64 { return m.d.At(i, j) }

func (m *Matrix) set(i, j int, v float64) { m.d.Set(i, j, v) }

// Sum returns the sum of all entries.
func (m *Matrix) Sum() float64 { return mat.Sum(m.d) }

// Diagonal returns a copy of the diagonal entries.
func (m *Matrix) Diagonal() []float64 {
	out := make([]float64, m.n)
	for i := range out {
		out[i] = m.d.At(i, i)
	}
	return out
}

// Raw returns a row-major copy of the entries.
func (m *Matrix) Raw() []float64 {
	raw := m.d.RawMatrix()
	out := make([]float64, 0, m.n*m.n)
	for i := 0; i < m.n; i++ {
		out = append(out, raw.Data[i*raw.Stride:i*raw.Stride+m.n]...)
	}
	return out
}

// Rows returns a copy of the entries as rows.
func (m *Matrix) Rows() [][]float64 {
	raw := m.Raw()
	rows := make([][]float64, m.n)
	for i := range rows {
		rows[i] = raw[i*m.n : (i+1)*m.n]
	}
	return rows
}

// String formats the matrix for logs and debugging.
func (m *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.d, mat.Squeeze()))
}
