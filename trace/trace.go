package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrMalformed is returned when a trace line cannot be parsed.
var ErrMalformed = errors.New("trace: malformed record")

// Record is one iteration of a search.
type Record struct {
	Iteration int     `json:"iteration"`
	Popcount  int     `json:"popcount"`
	Score     float64 `json:"score"`
}

// AppendText appends the line form of r, including the trailing newline.
func (r Record) AppendText(b []byte) []byte {
	b = strconv.AppendInt(b, int64(r.Iteration), 10)
	b = append(b, ", "...)
	b = strconv.AppendInt(b, int64(r.Popcount), 10)
	b = append(b, ", "...)
	b = strconv.AppendFloat(b, r.Score, 'g', -1, 64)
	b = append(b, ",\n"...)
	return b
}

// String returns the line form of r without the newline.
func (r Record) String() string {
	b := r.AppendText(nil)
	return string(b[:len(b)-1])
}

// ParseRecord parses a single trace line.
func ParseRecord(line string) (Record, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, ",")

	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformed, line)
	}

	it, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Record{}, fmt.Errorf("%w: iteration: %w", ErrMalformed, err)
	}
	pop, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Record{}, fmt.Errorf("%w: popcount: %w", ErrMalformed, err)
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: score: %w", ErrMalformed, err)
	}

	return Record{Iteration: it, Popcount: pop, Score: score}, nil
}

// Writer writes records to an underlying stream.
// It is not safe for concurrent use.
type Writer struct {
	buf     *bufio.Writer
	closer  io.Closer // compressor, if any
	scratch []byte
	count   int
	closed  bool
}

// NewWriter creates a Writer on w using the given compression.
// Close must be called to flush; it does not close w.
func NewWriter(w io.Writer, c Compression) (*Writer, error) {
	tw := &Writer{}

	switch c {
	case CompressionNone:
		tw.buf = bufio.NewWriter(w)
	case CompressionZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("trace: zstd writer: %w", err)
		}
		tw.buf = bufio.NewWriter(enc)
		tw.closer = enc
	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		tw.buf = bufio.NewWriter(lw)
		tw.closer = lw
	default:
		return nil, fmt.Errorf("trace: unsupported compression %v", c)
	}

	return tw, nil
}

// Write appends a record.
func (w *Writer) Write(r Record) error {
	if w.closed {
		return io.ErrClosedPipe
	}
	w.scratch = r.AppendText(w.scratch[:0])
	if _, err := w.buf.Write(w.scratch); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int { return w.count }

// Close flushes buffered records and finishes the compression frame.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.buf.Flush(); err != nil {
		return err
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// Read parses every record from r using the given compression.
func Read(r io.Reader, c Compression) ([]Record, error) {
	switch c {
	case CompressionNone:
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("trace: zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	case CompressionLZ4:
		r = lz4.NewReader(r)
	default:
		return nil, fmt.Errorf("trace: unsupported compression %v", c)
	}

	var records []Record
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// WriteAll writes records to w and closes the Writer.
func WriteAll(w io.Writer, c Compression, records []Record) error {
	tw, err := NewWriter(w, c)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := tw.Write(r); err != nil {
			return err
		}
	}
	return tw.Close()
}
