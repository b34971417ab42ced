package embedding

import (
	"github.com/google/wire"

	"github.com/supportbrain/backend/internal/domain/knowledge"
)

// ProviderSet embedding providers
var ProviderSet = wire.NewSet(
	NewClientFromConfig,
	wire.Bind(new(knowledge.Embedder), new(*Client)),
)
