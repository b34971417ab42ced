package vector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/supportbrain/backend/internal/domain/knowledge"
	"github.com/supportbrain/backend/internal/infrastructure/log"
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PgVectorStore VectorIndex backed by a Postgres table with the vector extension
type PgVectorStore struct {
	db     *sql.DB
	table  string
	logger *slog.Logger
}

var _ knowledge.VectorIndex = (*PgVectorStore)(nil)

// OpenPgVectorStore opens the DSN and creates the table if missing
func OpenPgVectorStore(ctx context.Context, dsn, table string, dimension uint64) (*PgVectorStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	store, err := NewPgVectorStore(db, table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.EnsureSchema(ctx, dimension); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewPgVectorStore wraps an open database handle
func NewPgVectorStore(db *sql.DB, table string) (*PgVectorStore, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &PgVectorStore{
		db:     db,
		table:  table,
		logger: log.NewModuleLogger("vector", "pgvector"),
	}, nil
}

// EnsureSchema creates the extension, table and namespace index
func (s *PgVectorStore) EnsureSchema(ctx context.Context, dimension uint64) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			namespace TEXT NOT NULL,
			id TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (namespace, id)
		)`, s.table, dimension),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_namespace ON %s (namespace)`, s.table, s.table),
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to prepare pgvector schema: %w", err)
		}
	}
	s.logger.Info("Checked/created pgvector table", "table", s.table, "dimension", dimension)
	return nil
}

// Upsert inserts or overwrites records in one transaction
func (s *PgVectorStore) Upsert(ctx context.Context, namespace string, records []knowledge.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`INSERT INTO %s (namespace, id, embedding, metadata, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (namespace, id) DO UPDATE
		SET embedding = EXCLUDED.embedding, metadata = EXCLUDED.metadata, updated_at = now()`, s.table)

	for _, r := range records {
		metadata, err := json.Marshal(r.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata for %s: %w", r.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, namespace, r.ID, pgvector.NewVector(r.Vector), string(metadata)); err != nil {
			return fmt.Errorf("failed to upsert %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}
	return nil
}

// Query orders namespace rows by cosine distance
func (s *PgVectorStore) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]knowledge.ScoredRecord, error) {
	if topK <= 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT id, 1 - (embedding <=> $1) AS score, metadata
		FROM %s
		WHERE namespace = $2
		ORDER BY embedding <=> $1
		LIMIT $3`, s.table)

	rows, err := s.db.QueryContext(ctx, query, pgvector.NewVector(vector), namespace, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query pgvector: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []knowledge.ScoredRecord
	for rows.Next() {
		var (
			id       string
			score    float64
			metadata []byte
		)
		if err := rows.Scan(&id, &score, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		record := knowledge.ScoredRecord{ID: id, Score: score, Metadata: map[string]any{}}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &record.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode metadata for %s: %w", id, err)
			}
		}
		results = append(results, record)
	}
	return results, rows.Err()
}

// Ping checks the database connection
func (s *PgVectorStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle
func (s *PgVectorStore) Close() error {
	return s.db.Close()
}
