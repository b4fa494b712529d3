package mocks

import (
	"context"

	"github.com/bright0ne/A.M-Yusuf-Official/internal/service"
	"github.com/stretchr/testify/mock"
)

type ReplyService struct {
	mock.Mock
}

func (r *ReplyService) Reply(ctx context.Context, cmd service.IncomingMessageCommand) (service.ReplyResult, error) {
	args := r.Called(ctx, cmd)
	return args.Get(0).(service.ReplyResult), args.Error(1)
}
