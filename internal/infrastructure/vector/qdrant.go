package vector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/log"
)

// Reserved payload fields written by QdrantStore next to the caller's metadata
const (
	namespaceField = "namespace"
	recordIDField  = "record_id"
)

// QdrantStore VectorIndex over one Qdrant collection
// Namespaces are a keyword payload field filtered on every query.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
	logger     *slog.Logger
}

var _ knowledge.VectorIndex = (*QdrantStore)(nil)

// NewQdrantStore connects to Qdrant and makes sure the collection exists
func NewQdrantStore(ctx context.Context, cfg *config.VectorConfig) (*QdrantStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.QdrantHost,
		Port:   cfg.QdrantPort,
		APIKey: cfg.QdrantAPIKey,
		UseTLS: cfg.QdrantTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant: %w", err)
	}

	store := &QdrantStore{
		client:     client,
		collection: cfg.Collection,
		logger:     log.NewModuleLogger("vector", "qdrant"),
	}

	if err := store.EnsureCollection(ctx, cfg.Dimension); err != nil {
		_ = client.Close()
		return nil, err
	}
	return store, nil
}

// EnsureCollection creates the collection and its namespace index if missing
func (s *QdrantStore) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection %s: %w", s.collection, err)
	}
	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", s.collection, err)
	}

	_, err = s.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: s.collection,
		FieldName:      namespaceField,
		FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
	})
	if err != nil {
		return fmt.Errorf("failed to index namespace field: %w", err)
	}

	s.logger.Info("Created qdrant collection",
		"collection", s.collection,
		"vector_size", vectorSize,
	)
	return nil
}

// Upsert writes records and waits for the write to be applied
func (s *QdrantStore) Upsert(ctx context.Context, namespace string, records []knowledge.Record) error {
	if len(records) == 0 {
		return nil
	}

	points, err := buildPoints(namespace, records)
	if err != nil {
		return err
	}

	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	s.logger.Debug("Upserted points",
		"namespace", namespace,
		"count", len(points),
	)
	return nil
}

// Query runs a filtered similarity search inside namespace
func (s *QdrantStore) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]knowledge.ScoredRecord, error) {
	if topK <= 0 {
		return nil, nil
	}

	limit := uint64(topK)
	hits, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		Filter:         namespaceFilter(namespace),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query qdrant: %w", err)
	}

	results := make([]knowledge.ScoredRecord, 0, len(hits))
	for _, hit := range hits {
		results = append(results, hitToRecord(hit))
	}
	return results, nil
}

// Ping checks the Qdrant server health endpoint
func (s *QdrantStore) Ping(ctx context.Context) error {
	if _, err := s.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health check failed: %w", err)
	}
	return nil
}

// Close releases the gRPC connection
func (s *QdrantStore) Close() error {
	return s.client.Close()
}

// PointID maps a namespaced record ID onto a deterministic UUID
func PointID(namespace, id string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(namespace+":"+id)).String()
}

func namespaceFilter(namespace string) *qdrant.Filter {
	return &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch(namespaceField, namespace),
		},
	}
}

func buildPoints(namespace string, records []knowledge.Record) ([]*qdrant.PointStruct, error) {
	points := make([]*qdrant.PointStruct, len(records))
	for i, record := range records {
		payload := make(map[string]any, len(record.Metadata)+2)
		for k, v := range record.Metadata {
			if str, ok := v.(string); ok {
				v = sanitizeUTF8(str)
			}
			payload[k] = v
		}
		payload[namespaceField] = namespace
		payload[recordIDField] = record.ID

		values, err := qdrant.TryValueMap(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid payload for record %s: %w", record.ID, err)
		}

		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(PointID(namespace, record.ID)),
			Vectors: qdrant.NewVectors(record.Vector...),
			Payload: values,
		}
	}
	return points, nil
}

func hitToRecord(hit *qdrant.ScoredPoint) knowledge.ScoredRecord {
	payload := hit.GetPayload()
	metadata := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == namespaceField || k == recordIDField {
			continue
		}
		metadata[k] = fromValue(v)
	}

	id := extractStringValue(payload[recordIDField])
	if id == "" {
		id = hit.GetId().GetUuid()
	}

	return knowledge.ScoredRecord{
		ID:       id,
		Score:    float64(hit.GetScore()),
		Metadata: metadata,
	}
}

// fromValue converts a payload value back to plain Go types
func fromValue(val *qdrant.Value) any {
	if val == nil {
		return nil
	}
	switch kind := val.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_ListValue:
		items := kind.ListValue.GetValues()
		list := make([]any, len(items))
		for i, item := range items {
			list[i] = fromValue(item)
		}
		return list
	case *qdrant.Value_StructValue:
		fields := kind.StructValue.GetFields()
		m := make(map[string]any, len(fields))
		for k, v := range fields {
			m[k] = fromValue(v)
		}
		return m
	default:
		return nil
	}
}

func extractStringValue(val *qdrant.Value) string {
	if val == nil {
		return ""
	}
	return val.GetStringValue()
}

// sanitizeUTF8 Qdrant rejects payload strings with invalid UTF-8
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}
