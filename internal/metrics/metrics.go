package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "whatsapp_relay"

// Webhook event outcomes.
const (
	OutcomeReplied    = "replied"
	OutcomeSendFailed = "send_failed"
	OutcomeStatus     = "status"
	OutcomeIgnored    = "ignored"
	OutcomeMalformed  = "malformed"
	OutcomePanic      = "panic"
)

type Metrics struct {
	Registry *prometheus.Registry

	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	WebhookEvents        *prometheus.CounterVec
	WebhookVerifications *prometheus.CounterVec
	RepliesSent          *prometheus.CounterVec
	ReplySendDuration    prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),

		WebhookEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_events_total",
				Help:      "Webhook deliveries by processing outcome",
			},
			[]string{"outcome"},
		),
		WebhookVerifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_verifications_total",
				Help:      "Subscription handshakes by result",
			},
			[]string{"result"},
		),
		RepliesSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "replies_sent_total",
				Help:      "Outbound replies by result code",
			},
			[]string{"result"},
		),
		ReplySendDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "reply_send_duration_seconds",
				Help:      "Time spent delivering a reply, retries included",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
	}
}

// --- Recording Methods ---

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordWebhookEvent(outcome string) {
	m.WebhookEvents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordVerification(success bool) {
	result := "rejected"
	if success {
		result = "accepted"
	}
	m.WebhookVerifications.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordReplySent(result string, duration time.Duration) {
	m.RepliesSent.WithLabelValues(result).Inc()
	m.ReplySendDuration.Observe(duration.Seconds())
}
