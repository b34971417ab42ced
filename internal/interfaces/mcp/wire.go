package mcp

import (
	"github.com/google/wire"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/application/ingest"
)

// ProviderSet MCP providers
var ProviderSet = wire.NewSet(
	NewServer,
	wire.Bind(new(Assistant), new(*assist.Assistant)),
	wire.Bind(new(WebIngester), new(*ingest.WebService)),
)
