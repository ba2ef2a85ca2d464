// Package store persists the point catalog the index is built from.
// The catalog is the system of record; a serialized tree is a cache of
// it that can always be rebuilt.
package store

import (
	"context"
)

// Point is one cataloged point.
type Point struct {
	ID  string    `json:"id"`
	Vec []float32 `json:"point"`
}

// PointStore is the durable catalog of points.
type PointStore interface {
	// Put inserts or replaces the point with the given ID.
	Put(ctx context.Context, p Point) error

	// Get returns the point with the given ID, or nil if absent.
	Get(ctx context.Context, id string) (*Point, error)

	// All returns every cataloged point, in no particular order.
	All(ctx context.Context) ([]Point, error)

	// Count returns the number of cataloged points.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying storage.
	Close() error
}
