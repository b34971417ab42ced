package knowledge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// IngestionRecord one stored chunk in the ingestion log
type IngestionRecord struct {
	OrgID       string
	Namespace   string
	ChunkID     string
	SourceType  SourceType
	SourceID    string
	ContentHash string
	IngestedAt  time.Time
}

// IngestionLog ledger of what was written to the vector index
type IngestionLog interface {
	Record(ctx context.Context, records []IngestionRecord) error
	ListByOrg(ctx context.Context, orgID string, limit int) ([]IngestionRecord, error)
	CountByOrg(ctx context.Context, orgID string) (int, error)
}

// ContentHash sha256 hex of the chunk text
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
