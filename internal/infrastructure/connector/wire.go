package connector

import "github.com/google/wire"

// ProviderSet connector providers
var ProviderSet = wire.NewSet(
	NewRegistry,
)
