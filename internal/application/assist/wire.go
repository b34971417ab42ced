package assist

import "github.com/google/wire"

// ProviderSet assist providers
var ProviderSet = wire.NewSet(
	NewRetriever,
	wire.Bind(new(Searcher), new(*Retriever)),
	NewSynthesizer,
	wire.Bind(new(Drafter), new(*Synthesizer)),
	NewFormatter,
	NewOrchestrator,
	NewAssistant,
	NewIngestionWriter,
)
