package mocks

import (
	"context"

	"github.com/bright0ne/A.M-Yusuf-Official/pkg/cloudapi"
	"github.com/stretchr/testify/mock"
)

type ProviderService struct {
	mock.Mock
}

func (p *ProviderService) SendWithRetry(ctx context.Context, toNumber, text string) (cloudapi.Response, error) {
	args := p.Called(ctx, toNumber, text)
	return args.Get(0).(cloudapi.Response), args.Error(1)
}
