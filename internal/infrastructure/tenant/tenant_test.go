package tenant

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainConnector "github.com/supportbrain/backend/internal/domain/connector"
	domainTenant "github.com/supportbrain/backend/internal/domain/tenant"
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/connector"
)

type fakeRepo struct {
	mu    sync.Mutex
	items map[string]domainTenant.Integration
	err   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]domainTenant.Integration)}
}

func (f *fakeRepo) Save(_ context.Context, integration *domainTenant.Integration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[integration.OrgID] = *integration
	return nil
}

func (f *fakeRepo) FindActiveByOrg(_ context.Context, orgID string) (*domainTenant.Integration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	integration, ok := f.items[orgID]
	if !ok || !integration.Active {
		return nil, domainTenant.ErrNotFound
	}
	return &integration, nil
}

func (f *fakeRepo) List(context.Context) ([]*domainTenant.Integration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domainTenant.Integration, 0, len(f.items))
	for _, integration := range f.items {
		integration := integration
		out = append(out, &integration)
	}
	return out, nil
}

func (f *fakeRepo) get(orgID string) (domainTenant.Integration, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	integration, ok := f.items[orgID]
	return integration, ok
}

const seedYAML = `
integrations:
  - org_id: "1"
    platform: gorgias
    base_url: https://acme.gorgias.com
    username: ops@acme.com
    api_key: secret
  - org_id: "2"
    platform: bigcommerce
    store_hash: abc123
    api_key: token
    active: false
`

func TestParseSeed(t *testing.T) {
	integrations, err := ParseSeed([]byte(seedYAML))
	require.NoError(t, err)
	require.Len(t, integrations, 2)

	assert.Equal(t, "1", integrations[0].OrgID)
	assert.Equal(t, domainConnector.PlatformGorgias, integrations[0].Platform)
	assert.True(t, integrations[0].Active)
	assert.Equal(t, "abc123", integrations[1].StoreHash)
	assert.False(t, integrations[1].Active)
}

func TestParseSeed_Invalid(t *testing.T) {
	_, err := ParseSeed([]byte("integrations:\n  - platform: gorgias\n"))
	assert.ErrorContains(t, err, "org_id")

	_, err = ParseSeed([]byte("integrations:\n  - org_id: \"1\"\n    platform: zendesk\n"))
	assert.ErrorContains(t, err, "zendesk")

	_, err = ParseSeed([]byte("integrations: ["))
	assert.Error(t, err)
}

func TestResolver_StoredIntegrationWins(t *testing.T) {
	repo := newFakeRepo()
	require.NoError(t, repo.Save(context.Background(), &domainTenant.Integration{
		OrgID: "1", Platform: domainConnector.PlatformGorgias,
		BaseURL: "https://acme.gorgias.com", Username: "ops@acme.com", APIKey: "k", Active: true,
	}))
	r := NewResolver(repo, &config.TenantConfig{BigCommerceStoreHash: "h", BigCommerceToken: "t"}, connector.NewRegistry())

	cfg, err := r.Resolve(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "org_1", cfg.Namespace)
	assert.Equal(t, domainConnector.PlatformGorgias, cfg.Integration.Platform)

	conn, _, err := r.Connector(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, domainConnector.PlatformGorgias, conn.Platform())
}

func TestResolver_EnvFallback(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.TenantConfig
		want domainConnector.Platform
	}{
		{"gorgias", &config.TenantConfig{GorgiasBaseURL: "https://x.gorgias.com", GorgiasUsername: "u", GorgiasAPIKey: "k", BigCommerceStoreHash: "h", BigCommerceToken: "t"}, domainConnector.PlatformGorgias},
		{"bigcommerce", &config.TenantConfig{BigCommerceStoreHash: "h", BigCommerceToken: "t"}, domainConnector.PlatformBigCommerce},
		{"none", &config.TenantConfig{}, domainConnector.PlatformNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(newFakeRepo(), tt.cfg, connector.NewRegistry())
			cfg, err := r.Resolve(context.Background(), "7")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Integration.Platform)
			assert.Equal(t, "7", cfg.OrgID)
		})
	}
}

func TestResolver_RepoErrorPropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.err = assert.AnError
	r := NewResolver(repo, &config.TenantConfig{}, connector.NewRegistry())

	_, err := r.Resolve(context.Background(), "1")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestResolver_MisconfiguredFallsBackToNoop(t *testing.T) {
	repo := newFakeRepo()
	require.NoError(t, repo.Save(context.Background(), &domainTenant.Integration{
		OrgID: "1", Platform: domainConnector.PlatformGorgias, Active: true,
	}))
	r := NewResolver(repo, &config.TenantConfig{}, connector.NewRegistry())

	conn, cfg, err := r.Connector(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, domainConnector.PlatformNone, conn.Platform())
	assert.Equal(t, "org_1", cfg.Namespace)
}

func TestSeedSyncer_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "integrations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0600))

	repo := newFakeRepo()
	syncer := NewSeedSyncer(&config.TenantConfig{SeedFile: path}, repo)
	require.NoError(t, syncer.Start(context.Background()))
	defer syncer.Stop()

	integration, ok := repo.get("1")
	require.True(t, ok)
	assert.Equal(t, "secret", integration.APIKey)

	updated := `
integrations:
  - org_id: "1"
    platform: gorgias
    base_url: https://acme.gorgias.com
    username: ops@acme.com
    api_key: rotated
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0600))

	assert.Eventually(t, func() bool {
		integration, _ := repo.get("1")
		return integration.APIKey == "rotated"
	}, 3*time.Second, 50*time.Millisecond)
}

func TestSeedSyncer_NoPathIsNoop(t *testing.T) {
	syncer := NewSeedSyncer(&config.TenantConfig{}, newFakeRepo())
	require.NoError(t, syncer.Start(context.Background()))
	syncer.Stop()
}
