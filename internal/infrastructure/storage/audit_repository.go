package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/supportbrain/backend/internal/domain/audit"
)

// auditRepository SQLite feedback log
type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates the repository and its table
func NewAuditRepository(db *sql.DB) (audit.Repository, error) {
	if err := initAuditTable(db); err != nil {
		return nil, err
	}
	return &auditRepository{db: db}, nil
}

func initAuditTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS audit_logs (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		ticket_id TEXT NOT NULL DEFAULT '',
		action TEXT NOT NULL,
		draft TEXT NOT NULL DEFAULT '',
		comment TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create audit_logs table: %w", err)
	}

	createIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_audit_logs_org_created ON audit_logs(org_id, created_at);`

	if _, err := db.Exec(createIndexSQL); err != nil {
		return fmt.Errorf("failed to create audit_logs index: %w", err)
	}
	return nil
}

// Save appends a feedback entry
func (r *auditRepository) Save(ctx context.Context, fb *audit.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO audit_logs (id, org_id, ticket_id, action, draft, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		fb.ID,
		fb.OrgID,
		fb.TicketID,
		string(fb.Action),
		fb.Draft,
		fb.Comment,
		fb.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// ListByOrg newest first
func (r *auditRepository) ListByOrg(ctx context.Context, orgID string, limit int) ([]*audit.Feedback, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, org_id, ticket_id, action, draft, comment, created_at
		FROM audit_logs
		WHERE org_id = ?
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*audit.Feedback
	for rows.Next() {
		var (
			fb        audit.Feedback
			action    string
			createdAt int64
		)
		if err := rows.Scan(&fb.ID, &fb.OrgID, &fb.TicketID, &action, &fb.Draft, &fb.Comment, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		fb.Action = audit.Action(action)
		fb.CreatedAt = time.UnixMilli(createdAt)
		entries = append(entries, &fb)
	}
	return entries, rows.Err()
}
