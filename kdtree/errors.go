package kdtree

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is matched by every *DimensionMismatchError.
	ErrDimensionMismatch = errors.New("kdtree: dimension mismatch")
	// ErrDuplicateKey is returned by Insert and Build for a point already present.
	ErrDuplicateKey = errors.New("kdtree: duplicate key")
	// ErrNotFound is returned by Delete for a point that is not in the tree.
	ErrNotFound = errors.New("kdtree: key not found")
	// ErrEmptyTree is returned by Nearest on a tree with no points.
	ErrEmptyTree = errors.New("kdtree: empty tree")
)

// DimensionMismatchError reports a point whose length disagrees with the
// dimension it is used against.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("kdtree: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

func mismatch(expected, actual int) error {
	return &DimensionMismatchError{Expected: expected, Actual: actual}
}
