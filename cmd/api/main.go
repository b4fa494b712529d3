package main

import (
	"context"

	"github.com/bright0ne/A.M-Yusuf-Official/internal/api"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/api/v1"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/config"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/metrics"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/service"
	"github.com/bright0ne/A.M-Yusuf-Official/pkg/cloudapi"
	"github.com/bright0ne/A.M-Yusuf-Official/pkg/httpclient"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		fx.Provide(
			config.Load,
			NewLogger,
			metrics.NewMetrics,
			NewSender,
			service.NewProviderService,
			service.NewReplyService,

			api.NewApp,
			api.NewHandler,
			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *api.Handler, webhook *v1.Handler, m *metrics.Metrics,
	cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle,
) {
	api.SetupRoutes(app, handler, webhook, m, cfg, logger)

	if cfg.Webhook.UsesDefaultVerifyToken() {
		logger.Warn("VERIFY_TOKEN is not set; using the built-in default token, which is insecure")
	}
	if cfg.Webhook.AppSecret == "" {
		logger.Warn("APP_SECRET is not set; webhook payload signatures are not verified")
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := app.Listen(cfg.API.Address()); err != nil {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			logger.Info("HTTP server started",
				zap.String("address", cfg.API.Address()),
				zap.String("apiVersion", cfg.WhatsApp.APIVersion),
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func NewSender(cfg *config.Config) cloudapi.Sender {
	client := httpclient.NewHTTPClient(cfg.WhatsApp.Timeout, httpclient.WithUserAgent(api.ServiceName))
	return cloudapi.NewSender(cfg.WhatsApp, client)
}
