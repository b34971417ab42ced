package ingest

import "github.com/google/wire"

// ProviderSet ingestion providers
var ProviderSet = wire.NewSet(
	NewTicketExtractor,
	NewHistoricalService,
	NewWebService,
)
