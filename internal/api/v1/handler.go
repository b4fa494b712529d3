package v1

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"

	"github.com/bright0ne/A.M-Yusuf-Official/internal/config"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/constants"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/metrics"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/model"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errInvalidJSON = errors.New("body is not valid JSON")

type Handler struct {
	logger      *zap.Logger
	service     service.ReplyService
	metrics     *metrics.Metrics
	verifyToken string
}

func NewHandler(logger *zap.Logger, service service.ReplyService, metrics *metrics.Metrics, cfg *config.Config) *Handler {
	return &Handler{
		logger:      logger,
		service:     service,
		metrics:     metrics,
		verifyToken: cfg.Webhook.VerifyToken,
	}
}

// Verify answers the platform's subscription handshake.
func (h *Handler) Verify(c *fiber.Ctx) error {
	mode := c.Query(QueryMode)
	token := c.Query(QueryVerifyToken)
	challenge := c.Query(QueryChallenge)

	tokenMatches := subtle.ConstantTimeCompare([]byte(token), []byte(h.verifyToken)) == 1
	if mode != ModeSubscribe || !tokenMatches {
		h.metrics.RecordVerification(false)
		h.logger.Warn("Webhook verification failed",
			zap.String("mode", mode),
			zap.Bool("tokenMatches", tokenMatches),
		)

		return service.NewServiceError(constants.ErrCodeVerificationFailed, service.ErrVerificationFailed)
	}

	h.metrics.RecordVerification(true)
	h.logger.Info("Webhook verified")

	return c.Status(fiber.StatusOK).SendString(challenge)
}

// Receive acknowledges every parseable delivery with 200, whatever happens to the reply.
func (h *Handler) Receive(c *fiber.Ctx) error {
	body := c.Body()
	if !json.Valid(body) {
		return h.malformed(c, errInvalidJSON)
	}

	var event model.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return h.malformed(c, err)
		}

		// valid JSON of the wrong shape is acknowledged like any other unusable event
		h.metrics.RecordWebhookEvent(metrics.OutcomeIgnored)
		h.logger.Warn("Ignoring webhook payload with unexpected shape",
			zap.Error(err),
			zap.String("field", typeErr.Field),
			zap.Any("requestID", c.Locals("requestid")),
		)

		return c.Status(fiber.StatusOK).JSON(ack)
	}

	outcome := h.dispatch(c.UserContext(), event)
	h.metrics.RecordWebhookEvent(outcome)

	h.logger.Debug("Webhook acknowledged",
		zap.String("outcome", outcome),
		zap.Any("requestID", c.Locals("requestid")),
	)

	return c.Status(fiber.StatusOK).JSON(ack)
}

func (h *Handler) malformed(c *fiber.Ctx, err error) error {
	h.metrics.RecordWebhookEvent(metrics.OutcomeMalformed)
	h.logger.Warn("Failed to parse webhook payload",
		zap.Error(err),
		zap.Int("size", len(c.Body())),
		zap.Any("requestID", c.Locals("requestid")),
	)

	return service.NewServiceError(constants.ErrCodeMalformedPayload, err)
}

func (h *Handler) dispatch(ctx context.Context, event model.WebhookEvent) (outcome string) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Panic while processing webhook",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			outcome = metrics.OutcomePanic
		}
	}()

	message, ok := event.FirstMessage()
	if !ok {
		if value, found := event.FirstValue(); found && len(value.Statuses) > 0 {
			h.logger.Debug("Status callback received",
				zap.String("messageID", value.Statuses[0].ID),
				zap.String("status", value.Statuses[0].Status),
			)
			return metrics.OutcomeStatus
		}

		return metrics.OutcomeIgnored
	}

	text, ok := message.TextBody()
	if !ok || message.From == "" {
		h.logger.Debug("Message without text or sender ignored",
			zap.String("messageID", message.ID),
			zap.String("type", message.Type),
		)
		return metrics.OutcomeIgnored
	}

	cmd := service.IncomingMessageCommand{
		MessageID: message.ID,
		From:      message.From,
		Text:      text,
	}

	if _, err := h.service.Reply(ctx, cmd); err != nil {
		h.logger.Warn("Reply not delivered",
			zap.Error(err),
			zap.String("from", message.From),
			zap.String("messageID", message.ID),
		)
		return metrics.OutcomeSendFailed
	}

	return metrics.OutcomeReplied
}
