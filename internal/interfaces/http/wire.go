package http

import (
	"github.com/google/wire"

	"github.com/supportbrain/backend/internal/interfaces/http/handler"
)

// ProviderSet HTTP layer providers
var ProviderSet = wire.NewSet(
	handler.ProviderSet,
	NewServer,
)
