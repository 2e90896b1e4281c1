// Package vectorstore provides the similarity index behind the knowledge
// base: upsert text with its embedding, query the top-k nearest by vector.
package vectorstore

import "context"

// Document is an indexed knowledge-base chunk.
type Document struct {
	ID        string
	Content   string
	Source    string
	Embedding []float32
}

// Match is a retrieved document ordered by ascending distance.
type Match struct {
	Content  string
	Source   string
	Distance float64
}

type Store interface {
	// Upsert writes documents and their vectors into the index.
	Upsert(ctx context.Context, docs []Document) error

	// Query returns up to topK nearest documents for the given vector.
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
}
