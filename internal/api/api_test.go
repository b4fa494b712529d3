package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bright0ne/A.M-Yusuf-Official/internal/api"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/api/v1"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/api/v1/middleware"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/config"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/metrics"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/mocks"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/service"
	"github.com/bright0ne/A.M-Yusuf-Official/pkg/cloudapi"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	verifyToken = "s3cret"
	fromNumber  = "2348012345678"
)

func newTestApp(provider service.ProviderService, appSecret string) (*fiber.App, *metrics.Metrics) {
	logger := zap.NewNop()
	m := metrics.NewMetrics()
	cfg := &config.Config{Webhook: config.Webhook{VerifyToken: verifyToken, AppSecret: appSecret}}

	app := api.NewApp(logger, m)
	replies := service.NewReplyService(provider, logger, m)
	api.SetupRoutes(app, api.NewHandler(logger), v1.NewHandler(logger, replies, m, cfg), m, cfg, logger)

	return app, m
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func postWebhook(t *testing.T, app *fiber.App, payload string, headers map[string]string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return doRequest(t, app, req)
}

func textMessagePayload(from, body string) string {
	return `{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "102290129340398",
			"changes": [{
				"field": "messages",
				"value": {
					"messaging_product": "whatsapp",
					"metadata": {"display_phone_number": "15550783881", "phone_number_id": "106540352242922"},
					"contacts": [{"profile": {"name": "Ada"}, "wa_id": "` + from + `"}],
					"messages": [{
						"from": "` + from + `",
						"id": "wamid.HBgLMTY1MDM4Nzk0MzkVAgASGBQzQTRBNjU5OUFFRTAzODEwMTQ0RgA=",
						"timestamp": "1749416383",
						"type": "text",
						"text": {"body": ` + mustJSON(body) + `}
					}]
				}
			}]
		}]
	}`
}

const statusPayload = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "102290129340398",
		"changes": [{
			"field": "messages",
			"value": {
				"messaging_product": "whatsapp",
				"metadata": {"display_phone_number": "15550783881", "phone_number_id": "106540352242922"},
				"statuses": [{
					"id": "wamid.HBgLMTY1MDM4Nzk0MzkVAgARGBI3MTE5MjVBOTE3MDk5QUVFM0YA",
					"status": "delivered",
					"timestamp": "1750030073",
					"recipient_id": "2348012345678"
				}]
			}
		}]
	}]
}`

func mustJSON(v string) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func outcomeCount(m *metrics.Metrics, outcome string) float64 {
	return testutil.ToFloat64(m.WebhookEvents.WithLabelValues(outcome))
}

func TestVerify(t *testing.T) {
	app, m := newTestApp(&mocks.ProviderService{}, "")

	t.Run("echoes challenge for a valid handshake", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/webhook?hub.mode=subscribe&hub.verify_token="+verifyToken+"&hub.challenge=123", nil)

		status, body := doRequest(t, app, req)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "123", body)
	})

	rejected := map[string]string{
		"wrong token":   "/webhook?hub.mode=subscribe&hub.verify_token=nope&hub.challenge=123",
		"wrong mode":    "/webhook?hub.mode=unsubscribe&hub.verify_token=" + verifyToken + "&hub.challenge=123",
		"missing token": "/webhook?hub.mode=subscribe&hub.challenge=123",
		"no parameters": "/webhook",
	}

	for name, target := range rejected {
		t.Run(name, func(t *testing.T) {
			status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusForbidden, status)
			assert.JSONEq(t, `{"code":"VERIFICATION_FAILED","message":"webhook verification failed"}`, body)
		})
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(m.WebhookVerifications.WithLabelValues("accepted")))
	assert.Equal(t, float64(len(rejected)), testutil.ToFloat64(m.WebhookVerifications.WithLabelValues("rejected")))
}

func TestReceive_RepliesToTextMessage(t *testing.T) {
	testCases := []struct {
		text  string
		reply string
	}{
		{text: "Hello", reply: service.ReplyGreeting},
		{text: "  hi  ", reply: service.ReplyGreeting},
		{text: "MENU", reply: service.ReplyMenu},
		{text: "1", reply: service.ReplyResearch},
		{text: "4", reply: service.ReplyFaith},
		{text: "5", reply: service.ReplyFallback},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			mockProvider := &mocks.ProviderService{}
			app, m := newTestApp(mockProvider, "")

			mockProvider.On("SendWithRetry", mock.Anything, fromNumber, tc.reply).
				Return(cloudapi.Response{MessageID: "wamid.out"}, nil).Once()

			status, body := postWebhook(t, app, textMessagePayload(fromNumber, tc.text), nil)

			assert.Equal(t, http.StatusOK, status)
			assert.JSONEq(t, `{"status":"ok"}`, body)
			mockProvider.AssertExpectations(t)
			mockProvider.AssertNumberOfCalls(t, "SendWithRetry", 1)
			assert.Equal(t, float64(1), outcomeCount(m, metrics.OutcomeReplied))
		})
	}
}

func TestReceive_AcknowledgesWithoutReplying(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		outcome string
	}{
		{name: "delivery status", payload: statusPayload, outcome: metrics.OutcomeStatus},
		{name: "empty object", payload: `{}`, outcome: metrics.OutcomeIgnored},
		{name: "null body", payload: `null`, outcome: metrics.OutcomeIgnored},
		{name: "empty entry", payload: `{"object":"whatsapp_business_account","entry":[]}`, outcome: metrics.OutcomeIgnored},
		{name: "empty changes", payload: `{"entry":[{"id":"1","changes":[]}]}`, outcome: metrics.OutcomeIgnored},
		{name: "no messages", payload: `{"entry":[{"changes":[{"value":{"messaging_product":"whatsapp"}}]}]}`, outcome: metrics.OutcomeIgnored},
		{name: "blank text", payload: textMessagePayload(fromNumber, "   "), outcome: metrics.OutcomeIgnored},
		{name: "missing sender", payload: textMessagePayload("", "hi"), outcome: metrics.OutcomeIgnored},
		{
			name:    "image message",
			payload: `{"entry":[{"changes":[{"value":{"messages":[{"from":"2348012345678","id":"wamid.img","type":"image","image":{"id":"1"}}]}}]}]}`,
			outcome: metrics.OutcomeIgnored,
		},
		{
			name:    "text as a string",
			payload: `{"entry":[{"changes":[{"value":{"messages":[{"from":"2348012345678","id":"wamid.s","type":"text","text":"hi"}]}}]}]}`,
			outcome: metrics.OutcomeIgnored,
		},
		{name: "entry as an object", payload: `{"entry":{"id":"1","changes":[]}}`, outcome: metrics.OutcomeIgnored},
		{
			name:    "numeric sender",
			payload: `{"entry":[{"changes":[{"value":{"messages":[{"from":234,"id":"wamid.n","type":"text","text":{"body":"hi"}}]}}]}]}`,
			outcome: metrics.OutcomeIgnored,
		},
		{
			name:    "status with string metadata",
			payload: `{"entry":[{"changes":[{"value":{"metadata":"x","statuses":[{"id":"wamid.out","status":"read"}]}}]}]}`,
			outcome: metrics.OutcomeIgnored,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockProvider := &mocks.ProviderService{}
			app, m := newTestApp(mockProvider, "")

			status, body := postWebhook(t, app, tc.payload, nil)

			assert.Equal(t, http.StatusOK, status)
			assert.JSONEq(t, `{"status":"ok"}`, body)
			mockProvider.AssertNotCalled(t, "SendWithRetry", mock.Anything, mock.Anything, mock.Anything)
			assert.Equal(t, float64(1), outcomeCount(m, tc.outcome))
		})
	}
}

func TestReceive_SendFailureStillAcknowledged(t *testing.T) {
	failures := map[string]error{
		"timeout":        cloudapi.ErrTimeout,
		"network":        cloudapi.ErrNetwork,
		"platform error": &cloudapi.APIError{StatusCode: 401, Code: 190, Message: "Invalid OAuth access token"},
		"server error":   &cloudapi.APIError{StatusCode: 500},
	}

	for name, sendErr := range failures {
		t.Run(name, func(t *testing.T) {
			mockProvider := &mocks.ProviderService{}
			app, m := newTestApp(mockProvider, "")

			mockProvider.On("SendWithRetry", mock.Anything, fromNumber, service.ReplyMenu).
				Return(cloudapi.Response{}, sendErr).Once()

			status, body := postWebhook(t, app, textMessagePayload(fromNumber, "menu"), nil)

			assert.Equal(t, http.StatusOK, status)
			assert.JSONEq(t, `{"status":"ok"}`, body)
			mockProvider.AssertExpectations(t)
			assert.Equal(t, float64(1), outcomeCount(m, metrics.OutcomeSendFailed))
		})
	}
}

func TestReceive_PanicStillAcknowledged(t *testing.T) {
	mockProvider := &mocks.ProviderService{}
	app, m := newTestApp(mockProvider, "")

	mockProvider.On("SendWithRetry", mock.Anything, fromNumber, service.ReplyGreeting).
		Panic("unexpected").
		Return(cloudapi.Response{}, nil)

	status, body := postWebhook(t, app, textMessagePayload(fromNumber, "hi"), nil)

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
	assert.Equal(t, float64(1), outcomeCount(m, metrics.OutcomePanic))
}

func TestReceive_MalformedPayload(t *testing.T) {
	mockProvider := &mocks.ProviderService{}
	app, m := newTestApp(mockProvider, "")

	for _, payload := range []string{`{"entry": [`, `not json`, ``} {
		status, body := postWebhook(t, app, payload, nil)

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.JSONEq(t, `{"code":"MALFORMED_PAYLOAD","message":"failed to parse webhook payload"}`, body)
	}

	mockProvider.AssertNotCalled(t, "SendWithRetry", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, float64(3), outcomeCount(m, metrics.OutcomeMalformed))
}

func TestReceive_Signature(t *testing.T) {
	const appSecret = "app-secret"
	payload := textMessagePayload(fromNumber, "hello")

	t.Run("valid signature", func(t *testing.T) {
		mockProvider := &mocks.ProviderService{}
		app, _ := newTestApp(mockProvider, appSecret)

		mockProvider.On("SendWithRetry", mock.Anything, fromNumber, service.ReplyGreeting).
			Return(cloudapi.Response{MessageID: "wamid.out"}, nil).Once()

		status, _ := postWebhook(t, app, payload, map[string]string{
			middleware.SignatureHeader: middleware.Sign([]byte(payload), appSecret),
		})

		assert.Equal(t, http.StatusOK, status)
		mockProvider.AssertExpectations(t)
	})

	rejected := map[string]map[string]string{
		"missing header": nil,
		"wrong secret":   {middleware.SignatureHeader: middleware.Sign([]byte(payload), "other")},
		"garbage header": {middleware.SignatureHeader: "sha256=zz"},
	}

	for name, headers := range rejected {
		t.Run(name, func(t *testing.T) {
			mockProvider := &mocks.ProviderService{}
			app, _ := newTestApp(mockProvider, appSecret)

			status, body := postWebhook(t, app, payload, headers)

			assert.Equal(t, http.StatusForbidden, status)
			assert.JSONEq(t, `{"code":"INVALID_SIGNATURE","message":"invalid payload signature"}`, body)
			mockProvider.AssertNotCalled(t, "SendWithRetry", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestOperationalEndpoints(t *testing.T) {
	app, _ := newTestApp(&mocks.ProviderService{}, "")

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "WhatsApp relay is running", body)

	status, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pong", body)

	status, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"status":"healthy"`)

	postWebhook(t, app, statusPayload, nil)

	status, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `whatsapp_relay_webhook_events_total{outcome="status"} 1`)
	assert.Contains(t, body, `whatsapp_relay_http_requests_total`)
}
