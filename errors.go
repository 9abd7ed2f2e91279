package hkctree

import (
	"errors"
	"fmt"

	"github.com/gopherforest/hkctree/dataset"
)

// ErrBadParameter is returned when a configuration value is structurally
// invalid (branching < 2, leaf_size < 1, trees < 1, or an unknown
// centers_init enum).
var ErrBadParameter = errors.New("hkctree: bad parameter")

// ErrShapeMismatch indicates a vector's dimension did not match the index's
// configured dimension. The expected/actual values are available via
// errors.As.
type ErrShapeMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("hkctree: shape mismatch: expected dimension %d, got %d", e.Expected, e.Actual)
}

// wrapShapeMismatch converts a dataset.DimensionError surfaced through
// Dataset.Append into the façade's own ErrShapeMismatch, so callers never
// need to depend on the dataset package's error types directly. Any other
// error passes through unchanged.
func wrapShapeMismatch(err error) error {
	var de *dataset.DimensionError
	if errors.As(err, &de) {
		return &ErrShapeMismatch{Expected: de.Expected, Actual: de.Actual}
	}
	return err
}

// ErrIoError wraps a failure from the underlying persistence stream.
type ErrIoError struct {
	Op    string
	cause error
}

func (e *ErrIoError) Error() string {
	return fmt.Sprintf("hkctree: io error during %s: %v", e.Op, e.cause)
}

func (e *ErrIoError) Unwrap() error { return e.cause }

func wrapIoError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ErrIoError{Op: op, cause: err}
}
