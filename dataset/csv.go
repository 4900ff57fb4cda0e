package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"unicode"
)

func isSeparator(r rune) bool {
	return r == ',' || r == ';' || unicode.IsSpace(r)
}

// DecodeCSV parses one vector per line. Fields are separated by commas,
// semicolons or whitespace. Blank lines and lines starting with '#' are
// skipped. A first line in which no field parses as a number is taken as a
// header; a partly numeric line is an error.
func DecodeCSV(data []byte) (*Matrix, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)

	var (
		values []float32
		rows   int
		cols   = -1
		lineNo int
		first  = true
	)

	for sc.Scan() {
		lineNo++
		fields := bytes.FieldsFunc(sc.Bytes(), isSeparator)
		if len(fields) == 0 || fields[0][0] == '#' {
			continue
		}

		row := make([]float32, len(fields))
		var (
			parseErr error
			numeric  int
		)
		for i, f := range fields {
			v, err := strconv.ParseFloat(string(f), 32)
			if err != nil {
				if parseErr == nil {
					parseErr = err
				}
				continue
			}
			row[i] = float32(v)
			numeric++
		}

		if parseErr != nil {
			if first && numeric == 0 {
				first = false
				continue
			}
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNo, parseErr)
		}
		first = false

		if cols == -1 {
			cols = len(row)
		} else if len(row) != cols {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d", ErrMalformed, lineNo, len(row), cols)
		}

		values = append(values, row...)
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if rows == 0 {
		return &Matrix{}, nil
	}
	return &Matrix{rows: rows, cols: cols, data: values}, nil
}

// EncodeCSV writes one comma-separated vector per line.
func EncodeCSV(m *Matrix) []byte {
	var buf bytes.Buffer
	for i := 0; i < m.rows; i++ {
		for j, v := range m.Row(i) {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.Write(strconv.AppendFloat(nil, float64(v), 'g', -1, 32))
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
