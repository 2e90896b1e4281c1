// Package llm hides the model vendor behind a small capability interface:
// prompt in, text out, plus embeddings. Graph nodes and the RAG tool depend
// on Provider so tests can substitute a fake.
package llm

import "context"

type Provider interface {
	// Generate runs a single prompt and returns the model's text response.
	Generate(ctx context.Context, prompt string) (string, error)

	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns embedding vectors for each text, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
