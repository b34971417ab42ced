package tenant

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domainConnector "github.com/supportbrain/backend/internal/domain/connector"
	domainTenant "github.com/supportbrain/backend/internal/domain/tenant"
)

// seedFile on-disk shape of the integrations seed
//
//	integrations:
//	  - org_id: "1"
//	    platform: gorgias
//	    base_url: https://acme.gorgias.com
//	    username: ops@acme.com
//	    api_key: xxx
type seedFile struct {
	Integrations []seedEntry `yaml:"integrations"`
}

type seedEntry struct {
	OrgID     string `yaml:"org_id"`
	Platform  string `yaml:"platform"`
	BaseURL   string `yaml:"base_url"`
	Username  string `yaml:"username"`
	APIKey    string `yaml:"api_key"`
	StoreHash string `yaml:"store_hash"`
	// Active defaults to true when omitted
	Active *bool `yaml:"active"`
}

// LoadSeedFile parses a YAML integrations seed
func LoadSeedFile(path string) ([]domainTenant.Integration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed parses seed YAML content
func ParseSeed(data []byte) ([]domainTenant.Integration, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	integrations := make([]domainTenant.Integration, 0, len(file.Integrations))
	for i, entry := range file.Integrations {
		if entry.OrgID == "" {
			return nil, fmt.Errorf("seed entry %d: org_id is required", i)
		}
		platform := domainConnector.Platform(entry.Platform)
		switch platform {
		case domainConnector.PlatformGorgias, domainConnector.PlatformBigCommerce, domainConnector.PlatformNone:
		default:
			return nil, fmt.Errorf("seed entry %d: unknown platform %q", i, entry.Platform)
		}

		active := true
		if entry.Active != nil {
			active = *entry.Active
		}
		integrations = append(integrations, domainTenant.Integration{
			OrgID:     entry.OrgID,
			Platform:  platform,
			BaseURL:   entry.BaseURL,
			Username:  entry.Username,
			APIKey:    entry.APIKey,
			StoreHash: entry.StoreHash,
			Active:    active,
		})
	}
	return integrations, nil
}

// ApplySeed saves every integration; the repository upserts by (org, platform)
func ApplySeed(ctx context.Context, repo domainTenant.IntegrationRepository, integrations []domainTenant.Integration) (int, error) {
	applied := 0
	for i := range integrations {
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		if err := repo.Save(ctx, &integrations[i]); err != nil {
			return applied, fmt.Errorf("failed to save integration for org %s: %w", integrations[i].OrgID, err)
		}
		applied++
	}
	return applied, nil
}
