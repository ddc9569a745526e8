// Package vecstore abstracts the vector index the retrieval pipeline runs
// against: upsert embedded documents, query nearest neighbors under an
// exact-match metadata filter.
package vecstore

import (
	"context"

	"github.com/craftedbits/resumatch/internal/model"
)

// Document is one embedded record in the index.
type Document struct {
	ID        string
	OwnerID   string
	Category  model.Category
	Content   string
	Embedding []float32
	Ctime     int64
}

// Filter narrows a query to one owner's records in one category. Both
// fields are required; the index never matches across owners.
type Filter struct {
	OwnerID  string
	Category model.Category
}

// Match is a query hit. Score is cosine similarity; results are returned
// with scores non-increasing.
type Match struct {
	ID       string
	OwnerID  string
	Category model.Category
	Content  string
	Score    float64
}

type Index interface {
	// Upsert writes documents with their vectors and metadata. Append-like:
	// existing ids are overwritten, nothing is deleted.
	Upsert(ctx context.Context, docs []Document) error
	// Query returns up to k nearest neighbors of vector under filter,
	// ordered by similarity descending.
	Query(ctx context.Context, vector []float32, filter Filter, k int) ([]Match, error)
}
