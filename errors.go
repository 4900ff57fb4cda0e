package mdlsel

import (
	"errors"
	"fmt"

	"github.com/hupe1980/mdlsel/distance"
	"github.com/hupe1980/mdlsel/quality"
	"github.com/hupe1980/mdlsel/tabu"
)

var (
	// ErrEmptyInput is returned when there are no events or no clusters.
	ErrEmptyInput = errors.New("mdlsel: empty input")
)

// ErrDimensionMismatch indicates that events and cluster centroids have
// different dimensionality.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("mdlsel: dimension mismatch: clusters have %d, events have %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidConfig indicates a configuration value outside its domain.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidConfig struct {
	Field  string
	Reason string
	cause  error
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("mdlsel: invalid config %s: %s", e.Field, e.Reason)
}

func (e *ErrInvalidConfig) Unwrap() error { return e.cause }

// translateError maps component errors onto the package's error types.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, quality.ErrEmpty) || errors.Is(err, tabu.ErrEmpty) {
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	}
	if errors.Is(err, distance.ErrDimensionMismatch) {
		return &ErrDimensionMismatch{cause: err}
	}
	if errors.Is(err, quality.ErrInvalidParams) {
		return &ErrInvalidConfig{Field: "params", Reason: err.Error(), cause: err}
	}
	if errors.Is(err, tabu.ErrInvalidOptions) {
		return &ErrInvalidConfig{Field: "tabu", Reason: err.Error(), cause: err}
	}

	return err
}
