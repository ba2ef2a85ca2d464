package kdtree

// Result is the answer to a nearest-neighbor query.
type Result struct {
	ID       string    `json:"id"`
	Point    []float32 `json:"point"`
	Distance float64   `json:"distance"` // squared Euclidean distance to the query
}

// nearest runs the branch-and-bound search below n. It descends into
// the child on the query's side of the split first, then visits the
// far child only if the splitting hyperplane is closer to the query
// than the best candidate found so far; anything beyond that plane is
// provably no closer. Candidates are compared by squared distance only.
func nearest(n *Node, query []float32) Result {
	best := Result{ID: n.ID, Point: n.Point, Distance: distanceSquared(n.Point, query)}

	near, far := n.Left, n.Right
	if query[n.Axis] >= n.Point[n.Axis] {
		near, far = far, near
	}

	if near != nil {
		if sub := nearest(near, query); sub.Distance < best.Distance {
			best = sub
		}
	}
	if far != nil {
		plane := float64(query[n.Axis] - n.Point[n.Axis])
		if plane*plane < best.Distance {
			if sub := nearest(far, query); sub.Distance < best.Distance {
				best = sub
			}
		}
	}
	return best
}

// distanceSquared returns the squared Euclidean distance between two
// points of equal length. The square root is never taken: only the
// ordering of distances matters anywhere in this package, and the
// squared form orders identically.
func distanceSquared(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return sum
}
