package fx

import (
	"riotcli/internal/api"
	"riotcli/internal/cli"
	"riotcli/internal/config"
	"riotcli/internal/logger"
	"riotcli/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	// api clients
	fx.Provide(api.NewTransport),
	fx.Provide(api.NewRiotClient),
	fx.Provide(api.NewDDragonClient),
	// svc
	fx.Provide(service.NewStaticDataService),
	fx.Provide(service.NewProfileService),
	// shell
	fx.Provide(cli.NewShell),
)
