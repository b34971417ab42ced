package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/domain/tenant"
	"github.com/supportbrain/backend/internal/infrastructure/secrets"
)

// integrationRepository SQLite store for integrations; API keys are encrypted at rest
type integrationRepository struct {
	db  *sql.DB
	key *secrets.EncryptionKey
}

// NewIntegrationRepository creates the repository and its table
func NewIntegrationRepository(db *sql.DB, key *secrets.EncryptionKey) (tenant.IntegrationRepository, error) {
	if err := initIntegrationTable(db); err != nil {
		return nil, err
	}
	return &integrationRepository{db: db, key: key}, nil
}

func initIntegrationTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS integrations (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		platform TEXT NOT NULL,
		base_url TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL DEFAULT '',
		api_key TEXT NOT NULL DEFAULT '',
		store_hash TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1,
		updated_at INTEGER NOT NULL,
		UNIQUE(org_id, platform)
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create integrations table: %w", err)
	}

	createIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_integrations_org_active ON integrations(org_id, active);`

	if _, err := db.Exec(createIndexSQL); err != nil {
		return fmt.Errorf("failed to create integrations index: %w", err)
	}
	return nil
}

// Save upserts by (org_id, platform)
func (r *integrationRepository) Save(ctx context.Context, integration *tenant.Integration) error {
	if integration.ID == "" {
		integration.ID = uuid.New().String()
	}
	integration.UpdatedAt = time.Now().UnixMilli()

	apiKey, err := r.key.Encrypt(integration.APIKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt api key: %w", err)
	}

	active := 0
	if integration.Active {
		active = 1
	}

	query := `
		INSERT INTO integrations
		(id, org_id, platform, base_url, username, api_key, store_hash, active, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(org_id, platform) DO UPDATE SET
			base_url = excluded.base_url,
			username = excluded.username,
			api_key = excluded.api_key,
			store_hash = excluded.store_hash,
			active = excluded.active,
			updated_at = excluded.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		integration.ID,
		integration.OrgID,
		string(integration.Platform),
		integration.BaseURL,
		integration.Username,
		apiKey,
		integration.StoreHash,
		active,
		integration.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save integration: %w", err)
	}
	return nil
}

// FindActiveByOrg newest active integration of an org
func (r *integrationRepository) FindActiveByOrg(ctx context.Context, orgID string) (*tenant.Integration, error) {
	query := `
		SELECT id, org_id, platform, base_url, username, api_key, store_hash, active, updated_at
		FROM integrations
		WHERE org_id = ? AND active = 1
		ORDER BY updated_at DESC
		LIMIT 1`

	integration, err := r.scan(r.db.QueryRowContext(ctx, query, orgID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tenant.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find integration: %w", err)
	}
	return integration, nil
}

// List every integration, active or not
func (r *integrationRepository) List(ctx context.Context) ([]*tenant.Integration, error) {
	query := `
		SELECT id, org_id, platform, base_url, username, api_key, store_hash, active, updated_at
		FROM integrations
		ORDER BY org_id, platform`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list integrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var integrations []*tenant.Integration
	for rows.Next() {
		integration, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan integration: %w", err)
		}
		integrations = append(integrations, integration)
	}
	return integrations, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *integrationRepository) scan(row rowScanner) (*tenant.Integration, error) {
	var (
		integration tenant.Integration
		platform    string
		apiKey      string
		active      int
	)
	err := row.Scan(
		&integration.ID,
		&integration.OrgID,
		&platform,
		&integration.BaseURL,
		&integration.Username,
		&apiKey,
		&integration.StoreHash,
		&active,
		&integration.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	integration.Platform = connector.Platform(platform)
	integration.Active = active == 1
	integration.APIKey, err = r.key.Decrypt(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt api key: %w", err)
	}
	return &integration, nil
}
