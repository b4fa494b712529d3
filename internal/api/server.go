package api

import (
	"fmt"

	errmiddleware "github.com/bright0ne/A.M-Yusuf-Official/internal/error"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ServiceName = "whatsapp-relay"

func NewApp(logger *zap.Logger, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               ServiceName,
		ErrorHandler:          errmiddleware.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.Error("Recovered from panic",
				zap.String("panic", fmt.Sprint(e)),
				zap.String("path", c.Path()),
				zap.Stack("stack"),
			)
		},
	}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	app.Use(metrics.HealthCheckMiddleware(ServiceName))

	return app
}
