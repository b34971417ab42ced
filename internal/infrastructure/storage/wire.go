package storage

import "github.com/google/wire"

// ProviderSet storage providers
var ProviderSet = wire.NewSet(
	ProvideDB,                 // SQLite connection
	NewIntegrationRepository,  // tenant integrations
	NewAuditRepository,        // feedback log
	NewIngestionLogRepository, // ingestion ledger
)
