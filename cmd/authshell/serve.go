package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/authtemplate/authshell/internal/backend"
	"github.com/authtemplate/authshell/internal/bridge"
	"github.com/authtemplate/authshell/internal/config"
	"github.com/authtemplate/authshell/internal/deeplink"
	"github.com/authtemplate/authshell/internal/logger"
	"github.com/authtemplate/authshell/internal/platform"
	"github.com/authtemplate/authshell/internal/server"
	"github.com/authtemplate/authshell/internal/session"
	"github.com/authtemplate/authshell/internal/trampoline"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the OAuth callback trampoline and deep-link router",
	Run: func(cmd *cobra.Command, args []string) {
		app := fx.New(
			config.Module,
			platform.Module,
			backend.Module,
			deeplink.Module,
			trampoline.Module,
			server.Module,
			fx.Provide(
				session.NewStore,
				fx.Annotate(
					deeplink.NewShellNavigator,
					fx.As(new(deeplink.Navigator)),
				),
			),
			fx.Invoke(initLogging),
			fx.Invoke(run),
		)
		app.Run()
	},
}

func initLogging(cfg *config.Config) error {
	return logger.InitLogger(&cfg.Logging)
}

func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, srv *server.Server, router *deeplink.Router, b bridge.Bridge, detector *platform.Detector) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("Runtime detected",
				zap.String("platform", string(detector.Platform())),
				zap.Bool("native", detector.IsNative()),
			)

			// Warm-resume listener plus the one-time cold-start query.
			router.Wire(b)

			go func() {
				if err := srv.Start(ctx); err != nil {
					logger.Error("Callback server stopped", zap.Error(err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return logger.Sync()
		},
	})
}
