package mmap

import (
	"errors"
	"io"
	"math"
	"os"
	"sync"
)

var (
	// ErrClosed reports use of a region after Close.
	ErrClosed = errors.New("mmap: region closed")
	// ErrTooLarge reports a file that does not fit the address space.
	ErrTooLarge = errors.New("mmap: file too large")
	// ErrNegativeOffset reports a ReadAt before the start of the region.
	ErrNegativeOffset = errors.New("mmap: negative offset")
)

// Region is a read-only mapping of a whole file.
type Region struct {
	mu     sync.RWMutex
	data   []byte
	n      int
	closed bool
}

// ReadOnly maps path for sequential reading. An empty file yields an empty
// region without a mapping.
func ReadOnly(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() > math.MaxInt {
		return nil, ErrTooLarge
	}

	n := int(fi.Size())
	if n == 0 {
		return &Region{}, nil
	}

	data, err := mapFile(f, n)
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: path, Err: err}
	}
	adviseSequential(data)

	return &Region{data: data, n: n}, nil
}

// Len is the size of the file when it was mapped.
func (r *Region) Len() int { return r.n }

// Data returns the mapped bytes. The slice is invalid once Close is called.
func (r *Region) Data() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, ErrClosed
	}
	return r.data, nil
}

// ReadAt implements io.ReaderAt.
func (r *Region) ReadAt(p []byte, off int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch {
	case r.closed:
		return 0, ErrClosed
	case off < 0:
		return 0, ErrNegativeOffset
	case off >= int64(r.n):
		return 0, io.EOF
	}

	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close releases the mapping. Later calls return nil.
func (r *Region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	data := r.data
	r.data = nil
	if len(data) == 0 {
		return nil
	}
	return unmapFile(data)
}
