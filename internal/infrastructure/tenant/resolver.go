package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainConnector "github.com/supportbrain/backend/internal/domain/connector"
	domainTenant "github.com/supportbrain/backend/internal/domain/tenant"
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/connector"
	"github.com/supportbrain/backend/internal/infrastructure/log"
)

// Resolver builds the per-request tenant configuration
// Stored integrations win; otherwise the process-wide env credentials are used.
type Resolver struct {
	repo     domainTenant.IntegrationRepository
	fallback *config.TenantConfig
	registry *connector.Registry
	logger   *slog.Logger
}

// NewResolver creates a resolver
func NewResolver(repo domainTenant.IntegrationRepository, cfg *config.TenantConfig, registry *connector.Registry) *Resolver {
	return &Resolver{
		repo:     repo,
		fallback: cfg,
		registry: registry,
		logger:   log.NewModuleLogger("tenant", "resolver"),
	}
}

// Resolve returns the tenant config of orgID
func (r *Resolver) Resolve(ctx context.Context, orgID string) (domainTenant.Config, error) {
	integration, err := r.repo.FindActiveByOrg(ctx, orgID)
	switch {
	case err == nil:
		return domainTenant.NewConfig(orgID, *integration), nil
	case errors.Is(err, domainTenant.ErrNotFound):
		return domainTenant.NewConfig(orgID, r.envIntegration(orgID)), nil
	default:
		return domainTenant.Config{}, fmt.Errorf("failed to load integration for org %s: %w", orgID, err)
	}
}

// Connector resolves the tenant and builds its platform connector
// A misconfigured integration degrades to the no-op connector.
func (r *Resolver) Connector(ctx context.Context, orgID string) (domainConnector.Connector, domainTenant.Config, error) {
	cfg, err := r.Resolve(ctx, orgID)
	if err != nil {
		return nil, domainTenant.Config{}, err
	}

	conn, err := r.registry.ForTenant(cfg)
	if err != nil {
		r.logger.Warn("Integration misconfigured, using no-op connector",
			"org_id", orgID,
			"platform", cfg.Integration.Platform,
			"error", err,
		)
		return connector.NoopConnector{}, cfg, nil
	}
	return conn, cfg, nil
}

// envIntegration Gorgias first, then BigCommerce, else none
func (r *Resolver) envIntegration(orgID string) domainTenant.Integration {
	f := r.fallback
	if f != nil && f.GorgiasAPIKey != "" && f.GorgiasBaseURL != "" {
		r.logger.Debug("Using env Gorgias credentials",
			"org_id", orgID,
			"api_key", log.MaskSecret(f.GorgiasAPIKey),
		)
		return domainTenant.Integration{
			OrgID:    orgID,
			Platform: domainConnector.PlatformGorgias,
			BaseURL:  f.GorgiasBaseURL,
			Username: f.GorgiasUsername,
			APIKey:   f.GorgiasAPIKey,
			Active:   true,
		}
	}
	if f != nil && f.BigCommerceStoreHash != "" && f.BigCommerceToken != "" {
		return domainTenant.Integration{
			OrgID:     orgID,
			Platform:  domainConnector.PlatformBigCommerce,
			APIKey:    f.BigCommerceToken,
			StoreHash: f.BigCommerceStoreHash,
			Active:    true,
		}
	}
	return domainTenant.Integration{OrgID: orgID, Platform: domainConnector.PlatformNone}
}
