package api

import (
	"github.com/bright0ne/A.M-Yusuf-Official/internal/api/v1"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/api/v1/middleware"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/config"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, handler *Handler, webhook *v1.Handler, m *metrics.Metrics,
	cfg *config.Config, logger *zap.Logger,
) {
	app.Get("/", handler.Home)
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", metrics.Handler(m))

	app.Get("/webhook", webhook.Verify)
	app.Post("/webhook", middleware.VerifySignature(cfg.Webhook.AppSecret, logger), webhook.Receive)
}
