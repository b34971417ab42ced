package connector

import (
	"fmt"
	"sync"

	domainConnector "github.com/supportbrain/backend/internal/domain/connector"
	"github.com/supportbrain/backend/internal/domain/tenant"
)

// Factory builds a connector from stored integration credentials
type Factory func(integration tenant.Integration) (domainConnector.Connector, error)

// Registry selects a connector by the tenant's configured platform
type Registry struct {
	mu        sync.RWMutex
	factories map[domainConnector.Platform]Factory
}

// NewRegistry registry with the built-in platforms
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[domainConnector.Platform]Factory)}
	r.Register(domainConnector.PlatformGorgias, newGorgiasFromIntegration)
	r.Register(domainConnector.PlatformBigCommerce, newBigCommerceFromIntegration)
	r.Register(domainConnector.PlatformNone, func(tenant.Integration) (domainConnector.Connector, error) {
		return NoopConnector{}, nil
	})
	return r
}

// Register adds or replaces the factory of a platform
func (r *Registry) Register(platform domainConnector.Platform, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[platform] = factory
}

// ForTenant builds the connector for the tenant's integration
// Inactive or missing integrations get the no-op connector.
func (r *Registry) ForTenant(cfg tenant.Config) (domainConnector.Connector, error) {
	integration := cfg.Integration
	platform := integration.Platform
	if platform == "" || !integration.Active {
		platform = domainConnector.PlatformNone
	}

	r.mu.RLock()
	factory, ok := r.factories[platform]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}
	return factory(integration)
}

func newGorgiasFromIntegration(integration tenant.Integration) (domainConnector.Connector, error) {
	if integration.BaseURL == "" {
		return nil, fmt.Errorf("gorgias integration requires a base URL")
	}
	if integration.Username == "" {
		return nil, fmt.Errorf("gorgias integration requires the account email as username")
	}
	return NewGorgiasClient(integration.BaseURL, integration.Username, integration.APIKey), nil
}

func newBigCommerceFromIntegration(integration tenant.Integration) (domainConnector.Connector, error) {
	if integration.StoreHash == "" {
		return nil, fmt.Errorf("bigcommerce integration requires a store hash")
	}
	return NewBigCommerceClient(integration.BaseURL, integration.StoreHash, integration.APIKey), nil
}
