package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"
)

var _ HTTPClient = (*httpClient)(nil)

type HTTPClient interface {
	Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error)
	Do(req *http.Request) (*http.Response, error)
}

type Option func(c *httpClient)

// WithUserAgent sets the User-Agent sent on every request unless the caller overrides it.
func WithUserAgent(userAgent string) Option {
	return func(c *httpClient) {
		c.defaultHeaders["User-Agent"] = userAgent
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *httpClient) {
		c.client.Transport = transport
	}
}

type httpClient struct {
	client         *http.Client
	defaultHeaders map[string]string
}

func NewHTTPClient(timeout time.Duration, opts ...Option) HTTPClient {
	c := &httpClient{
		client:         &http.Client{Timeout: timeout},
		defaultHeaders: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *httpClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, headers)
	return c.client.Do(req)
}

func (c *httpClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req, nil)
	return c.client.Do(req)
}

func (c *httpClient) setHeaders(req *http.Request, headers map[string]string) {
	for key, value := range c.defaultHeaders {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}
