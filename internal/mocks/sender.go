package mocks

import (
	"context"

	"github.com/bright0ne/A.M-Yusuf-Official/pkg/cloudapi"
	"github.com/stretchr/testify/mock"
)

type Sender struct {
	mock.Mock
}

func (s *Sender) Send(ctx context.Context, to string, body string) (cloudapi.Response, error) {
	args := s.Called(ctx, to, body)
	return args.Get(0).(cloudapi.Response), args.Error(1)
}
