package kdtree

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Save serializes the tree's current snapshot to w as the JSON
// encoding of its root node (null for an empty tree). It holds the
// exclusive lock for the duration so the snapshot cannot interleave
// with an insertion. Write errors from w propagate unchanged; nothing
// is retried here.
func (t *Tree) Save(ctx context.Context, w io.Writer) error {
	if err := t.lk.lock(ctx); err != nil {
		return err
	}
	defer t.lk.unlock()

	return json.NewEncoder(w).Encode(t.root)
}

// Load reads a serialized tree from r and reconstructs it as a new,
// unshared handle; the caller decides when and where to install it.
// Errors reading r propagate unchanged. Malformed or structurally
// inconsistent bytes return a *ParseError instead, so callers can
// distinguish a corrupt index from an unreadable stream.
func Load(r io.Reader) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var root *Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Err: err}
	}
	if root == nil {
		return NewEmpty(0), nil
	}

	dims := len(root.Point)
	if err := validateNode(root, dims); err != nil {
		return nil, &ParseError{Err: err}
	}
	return newTree(root, dims), nil
}

// validateNode walks the decoded tree checking the invariants the
// format cannot express: every point has the tree's dimensionality
// and every stored axis is a valid coordinate index.
func validateNode(n *Node, dims int) error {
	if n == nil {
		return nil
	}
	if dims == 0 {
		return fmt.Errorf("node %q has a zero-length point", n.ID)
	}
	if len(n.Point) != dims {
		return fmt.Errorf("node %q has %d dimensions, want %d", n.ID, len(n.Point), dims)
	}
	if n.Axis < 0 || n.Axis >= dims {
		return fmt.Errorf("node %q has axis %d outside [0,%d)", n.ID, n.Axis, dims)
	}
	if err := validateNode(n.Left, dims); err != nil {
		return err
	}
	return validateNode(n.Right, dims)
}
