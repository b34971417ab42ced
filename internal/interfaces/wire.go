package interfaces

import (
	"github.com/google/wire"

	"github.com/supportbrain/backend/internal/interfaces/http"
	"github.com/supportbrain/backend/internal/interfaces/mcp"
)

// ProviderSet interfaces layer providers
var ProviderSet = wire.NewSet(
	http.ProviderSet,
	mcp.ProviderSet,
)
