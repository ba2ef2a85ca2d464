package kdtree

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBatch indicates Build was called with no points.
	ErrEmptyBatch = errors.New("kdtree: empty point batch")

	// ErrBatchMismatch indicates the id and point batches have
	// different lengths.
	ErrBatchMismatch = errors.New("kdtree: ids and points have different lengths")

	// ErrDimensionMismatch indicates a point or query whose length
	// disagrees with the tree's dimensionality.
	ErrDimensionMismatch = errors.New("kdtree: point dimensionality mismatch")

	// ErrEmptyTree indicates a nearest-neighbor query against a tree
	// with no points.
	ErrEmptyTree = errors.New("kdtree: tree has no points")
)

// ParseError reports that persisted index bytes are structurally
// malformed: truncated input, invalid JSON, or a shape inconsistency
// such as sibling nodes disagreeing on point length. It is distinct
// from the I/O errors Load returns unchanged when the stream itself
// cannot be read, so callers can tell a corrupt index apart from an
// inaccessible one.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("kdtree: malformed index data: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
