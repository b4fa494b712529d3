package service

import (
	"context"
	"time"

	"github.com/bright0ne/A.M-Yusuf-Official/internal/metrics"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/model"
	"github.com/bright0ne/A.M-Yusuf-Official/pkg/cloudapi"
	"go.uber.org/zap"
)

const resultSuccess = "success"

type ReplyService interface {
	Reply(ctx context.Context, cmd IncomingMessageCommand) (ReplyResult, error)
}

type replyService struct {
	provider    ProviderService
	logger      *zap.Logger
	metrics     *metrics.Metrics
	selectReply func(text string) string
}

func NewReplyService(provider ProviderService, logger *zap.Logger, metrics *metrics.Metrics) ReplyService {
	return &replyService{
		provider:    provider,
		logger:      logger,
		metrics:     metrics,
		selectReply: SelectReply,
	}
}

// Reply selects the answer for an incoming text and delivers it to the sender.
// The returned error only reports delivery and is not meant for the platform.
func (s *replyService) Reply(ctx context.Context, cmd IncomingMessageCommand) (ReplyResult, error) {
	body := s.selectReply(NormalizeText(cmd.Text))
	if body == "" {
		body = ReplyApology
	}

	result := ReplyResult{Outbound: model.OutboundMessage{Recipient: cmd.From, Body: body}}

	start := time.Now()
	resp, err := s.provider.SendWithRetry(ctx, result.Outbound.Recipient, result.Outbound.Body)
	if err != nil {
		s.metrics.RecordReplySent(cloudapi.ErrorCode(err), time.Since(start))
		s.logger.Error("Failed to deliver reply",
			zap.Error(err),
			zap.String("from", cmd.From),
			zap.String("messageID", cmd.MessageID),
		)

		return result, err
	}

	s.metrics.RecordReplySent(resultSuccess, time.Since(start))
	result.MessageID = resp.MessageID

	s.logger.Info("Reply delivered",
		zap.String("from", cmd.From),
		zap.String("messageID", cmd.MessageID),
		zap.String("replyID", resp.MessageID),
	)

	return result, nil
}
