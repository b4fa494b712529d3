package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const homeText = "WhatsApp relay is running"

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) Home(c *fiber.Ctx) error {
	return c.SendString(homeText)
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}
