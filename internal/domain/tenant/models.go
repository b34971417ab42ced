package tenant

import (
	"context"
	"errors"

	"github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/domain/knowledge"
)

// ErrNotFound no integration configured for the organization
var ErrNotFound = errors.New("integration not found")

// Integration platform credentials of one organization
type Integration struct {
	ID        string             `yaml:"id" json:"id"`
	OrgID     string             `yaml:"org_id" json:"org_id"`
	Platform  connector.Platform `yaml:"platform" json:"platform"`
	BaseURL   string             `yaml:"base_url" json:"base_url"`
	Username  string             `yaml:"username" json:"username,omitempty"`
	APIKey    string             `yaml:"api_key" json:"-"`
	StoreHash string             `yaml:"store_hash" json:"store_hash,omitempty"`
	Active    bool               `yaml:"active" json:"active"`
	UpdatedAt int64              `yaml:"-" json:"updated_at"`
}

// Config per-request tenant configuration, passed down explicitly
type Config struct {
	OrgID       string
	Namespace   string
	Integration Integration
}

// NewConfig builds a tenant config for an organization
func NewConfig(orgID string, integration Integration) Config {
	return Config{
		OrgID:       orgID,
		Namespace:   knowledge.Namespace(orgID),
		Integration: integration,
	}
}

// IntegrationRepository integration storage
type IntegrationRepository interface {
	Save(ctx context.Context, integration *Integration) error
	FindActiveByOrg(ctx context.Context, orgID string) (*Integration, error)
	List(ctx context.Context) ([]*Integration, error)
}
