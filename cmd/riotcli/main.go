package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"riotcli/internal/cli"
	"riotcli/internal/constants"
	"riotcli/internal/domain"
	fxmodules "riotcli/internal/fx"
)

func main() {
	app := fx.New(
		fxmodules.Module,
		fx.Invoke(runShell),
		fx.NopLogger,
		fx.StopTimeout(constants.ShutdownTimeout),
	)
	if err := app.Err(); err != nil {
		if errors.Is(err, domain.ErrConfigurationMissing) {
			fmt.Fprintln(os.Stderr, "RIOT_API_KEY is not set. Export it or put it in .env.")
		} else {
			fmt.Fprintln(os.Stderr, "startup failed:", err)
		}
		os.Exit(1)
	}
	app.Run()
}

func runShell(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	shell *cli.Shell,
	logger zerolog.Logger,
) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				code := 0
				if err := shell.Run(ctx); err != nil {
					logger.Error().Err(err).Msg("shell stopped")
					code = 1
				}
				if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					logger.Warn().Err(err).Msg("shutdown request failed")
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				logger.Warn().Msg("shell did not stop in time")
				return stopCtx.Err()
			}
		},
	})
}
