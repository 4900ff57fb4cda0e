package dataset

import (
	"encoding/binary"
	"fmt"
	"math"
)

const binaryHeaderSize = 8

// DecodeBinary parses the FormatBinary layout.
func DecodeBinary(data []byte) (*Matrix, error) {
	if len(data) < binaryHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrMalformed, len(data), binaryHeaderSize)
	}

	rows := int32(binary.LittleEndian.Uint32(data[0:4]))
	cols := int32(binary.LittleEndian.Uint32(data[4:8]))
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative shape %dx%d", ErrMalformed, rows, cols)
	}

	n := int64(rows) * int64(cols)
	body := data[binaryHeaderSize:]
	if int64(len(body)) != n*4 {
		return nil, fmt.Errorf("%w: shape %dx%d needs %d bytes, got %d", ErrMalformed, rows, cols, n*4, len(body))
	}

	values := make([]float32, n)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(body[i*4:]))
	}

	return &Matrix{rows: int(rows), cols: int(cols), data: values}, nil
}

// EncodeBinary serialises m in the FormatBinary layout.
func EncodeBinary(m *Matrix) ([]byte, error) {
	if m.rows > math.MaxInt32 || m.cols > math.MaxInt32 {
		return nil, fmt.Errorf("dataset: shape %dx%d exceeds int32", m.rows, m.cols)
	}

	out := make([]byte, binaryHeaderSize, binaryHeaderSize+len(m.data)*4)
	binary.LittleEndian.PutUint32(out[0:4], uint32(m.rows))
	binary.LittleEndian.PutUint32(out[4:8], uint32(m.cols))
	for _, v := range m.data {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out, nil
}
