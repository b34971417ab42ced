package vector

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/supportbrain/backend/internal/domain/knowledge"
)

// MemoryStore in-process VectorIndex for tests and local runs
type MemoryStore struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]knowledge.Record
}

var _ knowledge.VectorIndex = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		namespaces: make(map[string]map[string]knowledge.Record),
	}
}

// Upsert stores copies of records, overwriting by ID
func (m *MemoryStore) Upsert(_ context.Context, namespace string, records []knowledge.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.namespaces[namespace]
	if !ok {
		ns = make(map[string]knowledge.Record)
		m.namespaces[namespace] = ns
	}
	for _, r := range records {
		metadata := make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			metadata[k] = v
		}
		ns[r.ID] = knowledge.Record{
			ID:       r.ID,
			Vector:   append([]float32(nil), r.Vector...),
			Metadata: metadata,
		}
	}
	return nil
}

// Query ranks namespace records by cosine similarity
func (m *MemoryStore) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]knowledge.ScoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ns := m.namespaces[namespace]
	results := make([]knowledge.ScoredRecord, 0, len(ns))
	for id, r := range ns {
		results = append(results, knowledge.ScoredRecord{
			ID:       id,
			Score:    cosine(vector, r.Vector),
			Metadata: r.Metadata,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].ID < results[j].ID
		}
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Ping always succeeds
func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Count records in namespace
func (m *MemoryStore) Count(namespace string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.namespaces[namespace])
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
