package kdtree

import (
	"fmt"
	"sort"
)

// pair keeps an identifier and its point together while the builder
// sorts and splits the batch.
type pair struct {
	id    string
	point []float32
}

// Build constructs a balanced tree from a batch of points and a
// parallel batch of identifiers. The batch must be non-empty, the two
// slices must have equal length, and every point must have the same
// non-zero dimensionality; violations fail fast with a sentinel error.
// Points are copied, so the caller may reuse the input slices.
func Build(ids []string, points [][]float32) (*Tree, error) {
	if len(points) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(ids) != len(points) {
		return nil, fmt.Errorf("%w: %d ids, %d points", ErrBatchMismatch, len(ids), len(points))
	}
	dims := len(points[0])
	if dims == 0 {
		return nil, fmt.Errorf("%w: zero-length point", ErrDimensionMismatch)
	}
	pairs := make([]pair, len(points))
	for i, p := range points {
		if len(p) != dims {
			return nil, fmt.Errorf("%w: point %d has %d dimensions, want %d", ErrDimensionMismatch, i, len(p), dims)
		}
		cp := make([]float32, dims)
		copy(cp, p)
		pairs[i] = pair{id: ids[i], point: cp}
	}
	return newTree(buildNode(pairs, 0, dims), dims), nil
}

// buildNode recursively builds a balanced subtree: sort the pairs by
// the coordinate this depth splits on, take the upper median as the
// node, and recurse on the halves on either side. Each call at least
// halves the batch, so the resulting tree height is O(log n).
func buildNode(pairs []pair, depth, dims int) *Node {
	if len(pairs) == 0 {
		return nil
	}
	axis := depth % dims
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].point[axis] < pairs[j].point[axis]
	})
	median := len(pairs) / 2
	return &Node{
		ID:    pairs[median].id,
		Point: pairs[median].point,
		Axis:  axis,
		Left:  buildNode(pairs[:median], depth+1, dims),
		Right: buildNode(pairs[median+1:], depth+1, dims),
	}
}
