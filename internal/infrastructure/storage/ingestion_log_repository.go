package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/supportbrain/backend/internal/domain/knowledge"
)

// ingestionLogRepository SQLite ledger of stored chunks
type ingestionLogRepository struct {
	db *sql.DB
}

// NewIngestionLogRepository creates the repository and its table
func NewIngestionLogRepository(db *sql.DB) (knowledge.IngestionLog, error) {
	if err := initIngestionLogTable(db); err != nil {
		return nil, err
	}
	return &ingestionLogRepository{db: db}, nil
}

func initIngestionLogTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS ingestion_log (
		namespace TEXT NOT NULL,
		chunk_id TEXT NOT NULL,
		org_id TEXT NOT NULL,
		source_type TEXT NOT NULL,
		source_id TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL,
		ingested_at INTEGER NOT NULL,
		PRIMARY KEY (namespace, chunk_id)
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create ingestion_log table: %w", err)
	}

	createIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_ingestion_log_org ON ingestion_log(org_id, ingested_at);`

	if _, err := db.Exec(createIndexSQL); err != nil {
		return fmt.Errorf("failed to create ingestion_log index: %w", err)
	}
	return nil
}

// Record upserts records in one transaction; re-ingesting a chunk refreshes its row
func (r *ingestionLogRepository) Record(ctx context.Context, records []knowledge.IngestionRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT OR REPLACE INTO ingestion_log
		(namespace, chunk_id, org_id, source_type, source_id, content_hash, ingested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	for _, rec := range records {
		ingestedAt := rec.IngestedAt
		if ingestedAt.IsZero() {
			ingestedAt = time.Now()
		}
		_, err := tx.ExecContext(ctx, query,
			rec.Namespace,
			rec.ChunkID,
			rec.OrgID,
			string(rec.SourceType),
			rec.SourceID,
			rec.ContentHash,
			ingestedAt.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("failed to record chunk %s: %w", rec.ChunkID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ingestion log: %w", err)
	}
	return nil
}

// ListByOrg newest first
func (r *ingestionLogRepository) ListByOrg(ctx context.Context, orgID string, limit int) ([]knowledge.IngestionRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT namespace, chunk_id, org_id, source_type, source_id, content_hash, ingested_at
		FROM ingestion_log
		WHERE org_id = ?
		ORDER BY ingested_at DESC, chunk_id
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingestion log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []knowledge.IngestionRecord
	for rows.Next() {
		var (
			rec        knowledge.IngestionRecord
			sourceType string
			ingestedAt int64
		)
		if err := rows.Scan(&rec.Namespace, &rec.ChunkID, &rec.OrgID, &sourceType, &rec.SourceID, &rec.ContentHash, &ingestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ingestion record: %w", err)
		}
		rec.SourceType = knowledge.SourceType(sourceType)
		rec.IngestedAt = time.UnixMilli(ingestedAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountByOrg number of distinct chunks stored for an org
func (r *ingestionLogRepository) CountByOrg(ctx context.Context, orgID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ingestion_log WHERE org_id = ?`, orgID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ingestion log: %w", err)
	}
	return count, nil
}
