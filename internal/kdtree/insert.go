package kdtree

// insertNode descends from n comparing the new point's coordinate on
// each node's split axis: strictly less goes left, everything else
// right. The new point becomes a leaf in the first absent slot, with
// its axis continuing the cycle from its parent. Existing nodes are
// never moved and nothing rebalances.
func insertNode(n *Node, id string, point []float32, dims int) {
	child := &n.Right
	if point[n.Axis] < n.Point[n.Axis] {
		child = &n.Left
	}
	if *child == nil {
		*child = &Node{ID: id, Point: point, Axis: (n.Axis + 1) % dims}
		return
	}
	insertNode(*child, id, point, dims)
}
