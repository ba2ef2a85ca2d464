// Package pointset loads (id, point) batches from external sources for
// index construction. Loaders only collect and validate the raw pairs;
// dimensional consistency is enforced when the batch is handed to the
// index builder.
package pointset

// Batch is a parallel pair of identifier and point slices, in source
// order.
type Batch struct {
	IDs    []string
	Points [][]float32
}

// Len returns the number of pairs in the batch.
func (b *Batch) Len() int { return len(b.IDs) }

func (b *Batch) append(id string, point []float32) {
	b.IDs = append(b.IDs, id)
	b.Points = append(b.Points, point)
}
