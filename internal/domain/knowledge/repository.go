package knowledge

import "context"

// Record vector index item
type Record struct {
	ID       string
	Vector   []float32
	Metadata map[string]any
}

// ScoredRecord vector index query hit
type ScoredRecord struct {
	ID       string
	Score    float64
	Metadata map[string]any
}

// VectorIndex namespaced vector store
// Implementations must never read across namespaces.
type VectorIndex interface {
	// Upsert inserts or overwrites records by ID within namespace
	Upsert(ctx context.Context, namespace string, records []Record) error
	// Query returns up to topK records by cosine similarity, best first
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]ScoredRecord, error)
	// Ping checks the index is reachable
	Ping(ctx context.Context) error
}

// Embedder turns texts into vectors of a fixed dimension
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatModel language model returning a JSON object as text
type ChatModel interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}
