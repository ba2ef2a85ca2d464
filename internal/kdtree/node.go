// Package kdtree implements an exact nearest-neighbor index over
// fixed-dimension float32 points, stored as a balanced k-d tree.
//
// A tree is built once from a batch of (id, point) pairs, queried
// concurrently, extended by single-point insertion, and serialized in
// full to a byte stream. Insertion never rebalances; heavy ad-hoc
// insertion can degrade query performance toward a linear scan. That is
// an accepted limitation, not a defect.
package kdtree

// Node is one node of the k-d tree. Every node splits the space on one
// coordinate (Axis); points with a smaller coordinate on that axis live
// in Left, the rest in Right. Children are exclusively owned by their
// parent, so the structure is a strict binary tree with no sharing.
//
// The JSON encoding of the root node is the persisted index format. A
// nil child is simply absent from the encoding, and unknown fields are
// ignored on decode, so the format can grow fields without breaking
// old readers.
type Node struct {
	ID    string    `json:"id"`
	Point []float32 `json:"point"`
	Left  *Node     `json:"left,omitempty"`
	Right *Node     `json:"right,omitempty"`
	Axis  int       `json:"axis"`
}

// size returns the number of nodes in the subtree rooted at n.
func (n *Node) size() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.size() + n.Right.size()
}

// height returns the height of the subtree rooted at n, counting nodes.
// An empty subtree has height 0, a leaf has height 1.
func (n *Node) height() int {
	if n == nil {
		return 0
	}
	lh, rh := n.Left.height(), n.Right.height()
	if lh > rh {
		return 1 + lh
	}
	return 1 + rh
}
