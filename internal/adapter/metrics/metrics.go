package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"taskmind/internal/core/domain"
	"taskmind/internal/core/ports"
)

const namespace = "taskmind"

// Metrics owns the collectors exposed on /metrics.
type Metrics struct {
	registry       *prometheus.Registry
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	aiCalls        *prometheus.CounterVec
	aiCallDuration *prometheus.HistogramVec
	aiTokensUsed   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		aiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_calls_total",
			Help:      "Provider calls by intent and outcome kind.",
		}, []string{"intent", "outcome"}),
		aiCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_call_duration_seconds",
			Help:      "Provider call latency by intent.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"intent"}),
		aiTokensUsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_tokens_total",
			Help:      "Tokens reported by the provider, by intent and direction.",
		}, []string{"intent", "direction"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.aiCalls,
		m.aiCallDuration,
		m.aiTokensUsed,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(route, method string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(latency.Seconds())
}

func (m *Metrics) ObserveAICall(intent domain.Intent, outcome error, latency time.Duration, usage domain.Usage) {
	m.aiCalls.WithLabelValues(string(intent), OutcomeLabel(outcome)).Inc()
	m.aiCallDuration.WithLabelValues(string(intent)).Observe(latency.Seconds())
	if usage.PromptTokens > 0 {
		m.aiTokensUsed.WithLabelValues(string(intent), "prompt").Add(float64(usage.PromptTokens))
	}
	if usage.CompletionTokens > 0 {
		m.aiTokensUsed.WithLabelValues(string(intent), "completion").Add(float64(usage.CompletionTokens))
	}
}

// OutcomeLabel keeps label cardinality bounded to the error taxonomy.
func OutcomeLabel(outcome error) string {
	switch domain.KindOf(outcome) {
	case nil:
		return "success"
	case domain.ErrValidation:
		return "validation"
	case domain.ErrNotFound:
		return "not_found"
	case domain.ErrConfiguration:
		return "configuration"
	case domain.ErrUpstreamAuth:
		return "upstream_auth"
	case domain.ErrUpstreamQuota:
		return "upstream_quota"
	case domain.ErrUpstreamParse:
		return "upstream_parse"
	default:
		return "internal"
	}
}

var _ ports.AIObserver = (*Metrics)(nil)
