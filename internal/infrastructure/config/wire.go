package config

import "github.com/google/wire"

// ProvideConfig loads the process configuration
func ProvideConfig() (*Config, error) {
	return Load("")
}

// ProviderSet config providers
var ProviderSet = wire.NewSet(
	ProvideConfig,
	NewServerConfig,
	NewDatabaseConfig,
	NewVectorConfig,
	NewEmbeddingConfig,
	NewLLMConfig,
	NewAssistConfig,
	NewIngestConfig,
	NewTenantConfig,
)
