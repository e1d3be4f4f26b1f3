// Package storage defines the document store boundary for the recipe
// collection. Implementations return untyped documents; decoding into the
// domain model happens above this layer.
package storage

import "context"

// RecipeStore is the capability handed to the query engine and the batch
// loader. The query path only reads; the mutating operations exist for the
// loader. A missing document is reported as model.ErrNotFound; every other
// error passes through as the backend produced it.
type RecipeStore interface {
	// FindAll returns every document in the collection in the store's
	// natural iteration order.
	FindAll(ctx context.Context) ([]map[string]interface{}, error)

	// FindByTitle returns the first document whose title field exactly
	// matches the given value. Which document wins when several share a
	// title is up to the backend.
	FindByTitle(ctx context.Context, title string) (map[string]interface{}, error)

	// InsertMany inserts a batch of documents.
	InsertMany(ctx context.Context, docs []map[string]interface{}) error

	// DeleteAll removes every document in the collection.
	DeleteAll(ctx context.Context) error

	// Count returns the number of documents in the collection.
	Count(ctx context.Context) (int64, error)

	// Ping verifies the backend connection.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close(ctx context.Context) error
}
