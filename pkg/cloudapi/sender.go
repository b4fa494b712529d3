package cloudapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/bright0ne/A.M-Yusuf-Official/pkg/httpclient"
	"github.com/go-playground/validator/v10"
)

const maxErrorBodySize = 64 << 10

type Sender interface {
	Send(ctx context.Context, to string, body string) (Response, error)
}

type cloudSender struct {
	cfg      Config
	client   httpclient.HTTPClient
	validate *validator.Validate
}

func NewSender(cfg Config, client httpclient.HTTPClient) Sender {
	return &cloudSender{cfg: cfg, client: client, validate: validator.New()}
}

func (s *cloudSender) Send(ctx context.Context, to string, body string) (Response, error) {
	request := NewTextMessageRequest(to, body)
	if err := s.validate.Struct(request); err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return Response{}, fmt.Errorf("encoding error: %w", err)
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + s.cfg.APIToken,
	}

	resp, err := s.client.Post(ctx, s.cfg.MessagesURL(), &buf, headers)
	if err != nil {
		if isTimeout(err) {
			return Response{}, ErrTimeout
		}

		return Response{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Response{}, decodeAPIError(resp)
	}

	var response SendMessageResponse
	if err = json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	if len(response.Messages) == 0 || response.Messages[0].ID == "" {
		return Response{}, fmt.Errorf("%w: no message id", ErrInvalidResponse)
	}

	res := Response{MessageID: response.Messages[0].ID}
	if len(response.Contacts) > 0 {
		res.WaID = response.Contacts[0].WaID
	}

	return res, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope errorEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodySize)).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Subcode = envelope.Error.ErrorSubcode
		apiErr.Type = envelope.Error.Type
		apiErr.Message = envelope.Error.Message
		apiErr.FBTraceID = envelope.Error.FBTraceID
	}

	return apiErr
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
