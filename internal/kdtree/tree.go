package kdtree

import (
	"context"
	"fmt"
)

// Tree is the shared handle over one k-d tree. It is safe for
// concurrent use: queries hold a read lock, Insert and Save hold the
// exclusive write lock, so a lock holder always observes (and leaves
// behind) a complete, non-torn tree. There is no finer-grained
// locking; whole-tree consistency is what Save needs anyway, and
// queries are short.
type Tree struct {
	lk   *rwLock
	root *Node
	dims int
}

func newTree(root *Node, dims int) *Tree {
	return &Tree{lk: newRWLock(), root: root, dims: dims}
}

// NewEmpty returns a tree with no points. If dims is positive it fixes
// the tree's dimensionality up front; if zero, the first inserted
// point fixes it.
func NewEmpty(dims int) *Tree {
	return newTree(nil, dims)
}

// Nearest returns the stored point with the minimum squared Euclidean
// distance to query, along with its identifier and that distance. The
// query must match the tree's dimensionality. Waiting for the read
// lock respects ctx; once the search starts it runs without
// suspension.
func (t *Tree) Nearest(ctx context.Context, query []float32) (Result, error) {
	if err := t.lk.rlock(ctx); err != nil {
		return Result{}, err
	}
	defer t.lk.runlock()

	if t.root == nil {
		return Result{}, ErrEmptyTree
	}
	if len(query) != t.dims {
		return Result{}, fmt.Errorf("%w: query has %d dimensions, tree has %d", ErrDimensionMismatch, len(query), t.dims)
	}
	return nearest(t.root, query), nil
}

// Insert adds a single (id, point) pair as a new leaf, without
// rebalancing. The point is copied. Inserting into an empty tree whose
// dimensionality is not yet fixed adopts the point's length as the
// tree's dimensionality.
func (t *Tree) Insert(ctx context.Context, id string, point []float32) error {
	if err := t.lk.lock(ctx); err != nil {
		return err
	}
	defer t.lk.unlock()

	if len(point) == 0 {
		return fmt.Errorf("%w: zero-length point", ErrDimensionMismatch)
	}
	if t.root == nil && t.dims == 0 {
		t.dims = len(point)
	}
	if len(point) != t.dims {
		return fmt.Errorf("%w: point has %d dimensions, tree has %d", ErrDimensionMismatch, len(point), t.dims)
	}

	cp := make([]float32, len(point))
	copy(cp, point)

	if t.root == nil {
		t.root = &Node{ID: id, Point: cp, Axis: 0}
		return nil
	}
	insertNode(t.root, id, cp, t.dims)
	return nil
}

// Len returns the number of points in the tree.
func (t *Tree) Len() int {
	if err := t.lk.rlock(context.Background()); err != nil {
		return 0
	}
	defer t.lk.runlock()
	return t.root.size()
}

// Height returns the tree height in nodes (0 for an empty tree). A
// freshly built tree is height-balanced; insertion can grow the height
// beyond the balanced bound.
func (t *Tree) Height() int {
	if err := t.lk.rlock(context.Background()); err != nil {
		return 0
	}
	defer t.lk.runlock()
	return t.root.height()
}

// Dims returns the tree's dimensionality, or 0 if it is empty and not
// yet fixed.
func (t *Tree) Dims() int {
	if err := t.lk.rlock(context.Background()); err != nil {
		return 0
	}
	defer t.lk.runlock()
	return t.dims
}
