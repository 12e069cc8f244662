// Package embedding consumes the output of the external text-embedding
// collaborator. Embeddings are best-effort enrichment: when the collaborator
// is absent or fails, records carry an empty vector rather than failing.
package embedding

import "context"

// Dimension is the vector size of the default sentence model
// (all-MiniLM-L6-v2).
const Dimension = 384

// Embedder turns text into a fixed-length numeric vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Noop is the degraded embedder used when no vector service is configured.
// It always returns an empty vector.
type Noop struct{}

func (Noop) Embed(context.Context, string) ([]float32, error) {
	return nil, nil
}
