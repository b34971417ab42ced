package vector

import (
	"context"
	"fmt"
	"time"

	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/config"
)

const connectTimeout = 10 * time.Second

// NewVectorIndex builds the configured backend
// The returned cleanup closes backend connections.
func NewVectorIndex(cfg *config.VectorConfig) (knowledge.VectorIndex, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), func() {}, nil
	case "pgvector":
		store, err := OpenPgVectorStore(ctx, cfg.PostgresDSN, cfg.Collection, cfg.Dimension)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "qdrant", "":
		store, err := NewQdrantStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown vector backend %q", cfg.Backend)
	}
}
