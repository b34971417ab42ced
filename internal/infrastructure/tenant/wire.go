package tenant

import "github.com/google/wire"

// ProviderSet tenant providers
var ProviderSet = wire.NewSet(
	NewResolver,
	NewSeedSyncer,
)
