package service

import (
	"context"
	"errors"
	"time"

	"github.com/bright0ne/A.M-Yusuf-Official/internal/config"
	"github.com/bright0ne/A.M-Yusuf-Official/pkg/cloudapi"
	"go.uber.org/zap"
)

type ProviderService interface {
	SendWithRetry(ctx context.Context, toNumber, text string) (cloudapi.Response, error)
}

type Provider struct {
	sender  cloudapi.Sender
	logger  *zap.Logger
	config  cloudapi.Config
	backoff time.Duration
}

func NewProviderService(sender cloudapi.Sender, logger *zap.Logger, config *config.Config) ProviderService {
	cfg := config.WhatsApp
	if cfg.Timeout <= 0 {
		cfg.Timeout = cloudapi.DefaultTimeout
	}

	return &Provider{sender: sender, logger: logger, config: cfg, backoff: 100 * time.Millisecond}
}

func (p *Provider) SendWithRetry(ctx context.Context, toNumber, text string) (cloudapi.Response, error) {
	var lastErr error

	maxAttempts := max(p.config.MaxAttempts, 1)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		p.logger.Debug("Attempting to send reply",
			zap.Int("attempt", attempt),
			zap.String("to", toNumber))

		providerCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)

		response, err := p.sender.Send(providerCtx, toNumber, text)
		cancel()

		if err == nil {
			p.logger.Info("Reply sent successfully",
				zap.String("messageId", response.MessageID),
				zap.String("to", toNumber),
				zap.Int("attempt", attempt))
			return response, nil
		}

		lastErr = err
		p.logger.Warn("Reply send attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.String("to", toNumber))

		if !retryable(err) {
			p.logger.Error("Non-retryable error encountered",
				zap.Error(err),
				zap.String("code", cloudapi.ErrorCode(err)),
				zap.String("to", toNumber))
			return cloudapi.Response{}, err
		}

		if attempt < maxAttempts {
			delay := time.Duration(attempt) * p.backoff
			p.logger.Debug("Waiting before retry", zap.Duration("delay", delay))

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return cloudapi.Response{}, ctx.Err()
			}
		}
	}

	p.logger.Error("All send attempts exhausted",
		zap.Error(lastErr),
		zap.Int("maxAttempts", maxAttempts),
		zap.String("to", toNumber))

	return cloudapi.Response{}, lastErr
}

func retryable(err error) bool {
	var apiErr *cloudapi.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	return !errors.Is(err, cloudapi.ErrInvalidRequest) && !errors.Is(err, cloudapi.ErrInvalidResponse)
}
