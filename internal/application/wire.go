package application

import (
	"github.com/google/wire"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/application/feedback"
	"github.com/supportbrain/backend/internal/application/ingest"
)

// ProviderSet application layer providers
var ProviderSet = wire.NewSet(
	assist.ProviderSet,
	ingest.ProviderSet,
	feedback.ProviderSet,
)
