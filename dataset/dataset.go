// Package dataset provides the minimal "matrix storage" collaborator the
// index reads points from. The index never owns or persists vector
// payloads; it only holds point ids and looks them up through Dataset.
package dataset

import (
	"errors"
	"fmt"

	"github.com/gopherforest/hkctree/core"
	"github.com/gopherforest/hkctree/internal/conv"
)

// ErrWrongDimension is returned when a row's length does not match the
// dataset's configured dimension.
var ErrWrongDimension = errors.New("dataset: vector dimension mismatch")

// DimensionError reports the expected and actual length of a row that
// failed Append's dimension check. Callers that want structured access to
// both values (rather than parsing ErrWrongDimension's message) can
// errors.As into this type.
type DimensionError struct {
	Expected int
	Actual   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: expected %d, got %d", ErrWrongDimension, e.Expected, e.Actual)
}

func (e *DimensionError) Unwrap() error { return ErrWrongDimension }

// Dataset is the external collaborator the tree builder, inserter, and
// searcher read vectors from.
type Dataset interface {
	// Dimension returns the fixed vector width of every row.
	Dimension() int
	// Len returns the number of rows currently stored.
	Len() int
	// Vector returns the row for id, or ok=false if id is out of range.
	Vector(id core.PointID) (row []float32, ok bool)
	// Append adds rows to the dataset, returning the id assigned to the
	// first new row (ids are assigned contiguously).
	Append(rows [][]float32) (core.PointID, error)
}

// Flat is a minimal slice-of-slices Dataset implementation, suitable for
// callers who don't bring their own storage layer.
type Flat struct {
	dimension int
	rows      [][]float32
}

// NewFlat creates an empty Flat dataset with the given vector dimension.
func NewFlat(dimension int) *Flat {
	return &Flat{dimension: dimension}
}

// NewFlatWithData creates a Flat dataset pre-populated with rows, all of
// which must match dimension.
func NewFlatWithData(dimension int, rows [][]float32) (*Flat, error) {
	f := NewFlat(dimension)
	if _, err := f.Append(rows); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Flat) Dimension() int { return f.dimension }

func (f *Flat) Len() int { return len(f.rows) }

func (f *Flat) Vector(id core.PointID) ([]float32, bool) {
	if int(id) >= len(f.rows) {
		return nil, false
	}
	return f.rows[id], true
}

func (f *Flat) Append(rows [][]float32) (core.PointID, error) {
	firstU32, err := conv.IntToUint32(len(f.rows))
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		if len(row) != f.dimension {
			return 0, &DimensionError{Expected: f.dimension, Actual: len(row)}
		}
	}
	f.rows = append(f.rows, rows...)
	return core.PointID(firstU32), nil
}
