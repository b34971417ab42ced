package llm

import (
	"github.com/google/wire"

	"github.com/supportbrain/backend/internal/domain/knowledge"
)

// ProviderSet chat model providers
var ProviderSet = wire.NewSet(
	NewClientFromConfig,
	wire.Bind(new(knowledge.ChatModel), new(*Client)),
)
