//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"github.com/supportbrain/backend/internal/application"
	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/infrastructure"
	"github.com/supportbrain/backend/internal/infrastructure/tenant"
	"github.com/supportbrain/backend/internal/interfaces"
)

// InitializeAll builds the server process
func InitializeAll() (*App, func(), error) {
	wire.Build(
		infrastructure.ProviderSet,
		application.ProviderSet,
		interfaces.ProviderSet,
		wire.Bind(new(assist.ConnectorResolver), new(*tenant.Resolver)),
		NewApp,
	)
	return nil, nil, nil
}

// InitializeServices builds the services without the HTTP layer
func InitializeServices() (*Services, func(), error) {
	wire.Build(
		infrastructure.ProviderSet,
		application.ProviderSet,
		wire.Bind(new(assist.ConnectorResolver), new(*tenant.Resolver)),
		NewServices,
	)
	return nil, nil, nil
}
