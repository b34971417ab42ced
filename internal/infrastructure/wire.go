package infrastructure

import (
	"github.com/google/wire"

	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/connector"
	"github.com/supportbrain/backend/internal/infrastructure/embedding"
	"github.com/supportbrain/backend/internal/infrastructure/llm"
	"github.com/supportbrain/backend/internal/infrastructure/pii"
	"github.com/supportbrain/backend/internal/infrastructure/secrets"
	"github.com/supportbrain/backend/internal/infrastructure/storage"
	"github.com/supportbrain/backend/internal/infrastructure/tenant"
	"github.com/supportbrain/backend/internal/infrastructure/tokens"
	"github.com/supportbrain/backend/internal/infrastructure/vector"
	"github.com/supportbrain/backend/internal/infrastructure/webpage"
)

// ProviderSet infrastructure layer providers
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	storage.ProviderSet,
	secrets.NewEncryptionKeyFromConfig,
	vector.ProviderSet,
	embedding.ProviderSet,
	llm.ProviderSet,
	connector.ProviderSet,
	tenant.ProviderSet,
	pii.NewScrubber,
	tokens.NewEstimator,
	webpage.NewDefaultFetcher,
)
