package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/log"
)

// errEmptyEmbedding the embedder returned no vector for the query
var errEmptyEmbedding = errors.New("embedding provider returned no vector")

// Retriever vector search with a recency boost
type Retriever struct {
	embedder knowledge.Embedder
	index    knowledge.VectorIndex
	window   time.Duration
	boost    float64
	retain   int
	now      func() time.Time
	logger   *slog.Logger
}

// NewRetriever creates a retriever
func NewRetriever(embedder knowledge.Embedder, index knowledge.VectorIndex, cfg *config.AssistConfig) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		window:   cfg.RecencyWindow,
		boost:    cfg.RecencyBoost,
		retain:   cfg.RetainTopN,
		now:      time.Now,
		logger:   log.NewModuleLogger("assist", "retriever"),
	}
}

// Search returns at most RetainTopN matches ordered by boosted score
// An empty namespace yields an empty slice, not an error.
func (r *Retriever) Search(ctx context.Context, query string, k int, namespace string) ([]knowledge.Match, error) {
	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, errEmptyEmbedding
	}

	hits, err := r.index.Query(ctx, namespace, vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("failed to query vector index: %w", err)
	}
	if len(hits) == 0 {
		r.logger.Debug("No matches", "namespace", namespace)
		return nil, nil
	}

	matches := r.rerank(hits)
	r.logger.Debug("Search completed",
		"namespace", namespace,
		"hits", len(hits),
		"retained", len(matches),
		"max_raw_score", knowledge.MaxRawScore(matches),
	)
	return matches, nil
}

// rerank applies the recency boost, sorts and truncates
func (r *Retriever) rerank(hits []knowledge.ScoredRecord) []knowledge.Match {
	now := r.now().Unix()
	windowSeconds := int64(r.window / time.Second)

	matches := make([]knowledge.Match, 0, len(hits))
	for _, hit := range hits {
		chunk := knowledge.ChunkFromPayload(hit.ID, hit.Metadata)
		boost := 1.0
		if age := now - chunk.Metadata.UnixTimestamp; age < windowSeconds {
			boost = r.boost
		}
		matches = append(matches, knowledge.Match{
			Chunk:        chunk,
			Score:        hit.Score,
			BoostedScore: hit.Score * boost,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].BoostedScore > matches[j].BoostedScore
	})

	if r.retain > 0 && len(matches) > r.retain {
		matches = matches[:r.retain]
	}
	return matches
}
