package feedback

import "github.com/google/wire"

// ProviderSet feedback providers
var ProviderSet = wire.NewSet(NewService)
