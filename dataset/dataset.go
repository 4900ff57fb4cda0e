package dataset

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/hupe1980/mdlsel/blobstore"
)

// ErrMalformed is returned for input that cannot be decoded.
var ErrMalformed = errors.New("dataset: malformed input")

// Matrix is a dense row-major table of float32 vectors.
// Events and cluster centroids are both stored as Matrix rows.
type Matrix struct {
	rows int
	cols int
	data []float32
}

// NewMatrix wraps data, which must hold rows*cols values.
func NewMatrix(rows, cols int, data []float32) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative shape %dx%d", ErrMalformed, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for shape %dx%d", ErrMalformed, len(data), rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// FromRows copies equal-length rows into a Matrix.
func FromRows(rows [][]float32) (*Matrix, error) {
	if len(rows) == 0 {
		return &Matrix{}, nil
	}

	cols := len(rows[0])
	data := make([]float32, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrMalformed, i, len(r), cols)
		}
		data = append(data, r...)
	}
	return &Matrix{rows: len(rows), cols: cols, data: data}, nil
}

// Rows returns the number of vectors.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the vector dimensionality.
func (m *Matrix) Cols() int { return m.cols }

// Data returns the flattened row-major values. It is not copied.
func (m *Matrix) Data() []float32 { return m.data }

// Row returns row i. It is not copied.
func (m *Matrix) Row(i int) []float32 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// Select returns a new Matrix holding the given rows in order.
func (m *Matrix) Select(indices []int) *Matrix {
	data := make([]float32, 0, len(indices)*m.cols)
	for _, i := range indices {
		data = append(data, m.Row(i)...)
	}
	return &Matrix{rows: len(indices), cols: m.cols, data: data}
}

// Format is an on-disk encoding.
type Format int

const (
	// FormatCSV is comma or whitespace separated text, one vector per line.
	FormatCSV Format = iota
	// FormatBinary is an int32 row count, an int32 column count and the
	// float32 values, all little-endian.
	FormatBinary
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatBinary:
		return "binary"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// FormatOf picks the format from a blob name: ".bin" is binary, anything
// else is CSV.
func FormatOf(name string) Format {
	if strings.EqualFold(path.Ext(name), ".bin") {
		return FormatBinary
	}
	return FormatCSV
}

// Decode parses data in the given format.
func Decode(data []byte, f Format) (*Matrix, error) {
	switch f {
	case FormatCSV:
		return DecodeCSV(data)
	case FormatBinary:
		return DecodeBinary(data)
	default:
		return nil, fmt.Errorf("dataset: unsupported format %s", f)
	}
}

// Encode serialises m in the given format.
func Encode(m *Matrix, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return EncodeCSV(m), nil
	case FormatBinary:
		return EncodeBinary(m)
	default:
		return nil, fmt.Errorf("dataset: unsupported format %s", f)
	}
}

// Load reads and decodes a blob, choosing the format from its name.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Matrix, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("dataset: load %s: %w", name, err)
	}

	m, err := Decode(data, FormatOf(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// Save encodes m and writes it, choosing the format from the name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, m *Matrix) error {
	data, err := Encode(m, FormatOf(name))
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}
