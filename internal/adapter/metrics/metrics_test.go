package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmind/internal/core/domain"
)

func TestOutcomeLabel(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"success":    {err: nil, want: "success"},
		"validation": {err: domain.NewValidationError("bad"), want: "validation"},
		"not found":  {err: domain.ErrTaskNotFound, want: "not_found"},
		"config":     {err: domain.ErrProviderNotConfigured, want: "configuration"},
		"auth":       {err: &domain.Error{Kind: domain.ErrUpstreamAuth}, want: "upstream_auth"},
		"quota":      {err: &domain.Error{Kind: domain.ErrUpstreamQuota}, want: "upstream_quota"},
		"parse":      {err: &domain.ParseError{Index: 1}, want: "upstream_parse"},
		"unknown":    {err: errors.New("boom"), want: "internal"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutcomeLabel(tt.err))
		})
	}
}

func TestMetrics_ObserveAICall(t *testing.T) {
	m := New()

	m.ObserveAICall(domain.IntentGenerate, nil, 2*time.Second, domain.Usage{PromptTokens: 100, CompletionTokens: 40, TotalTokens: 140})
	m.ObserveAICall(domain.IntentGenerate, &domain.ParseError{Index: -1}, time.Second, domain.Usage{})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiCalls.WithLabelValues("generate", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiCalls.WithLabelValues("generate", "upstream_parse")))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.aiTokensUsed.WithLabelValues("generate", "prompt")))
	assert.Equal(t, 40.0, testutil.ToFloat64(m.aiTokensUsed.WithLabelValues("generate", "completion")))
}

func TestMetrics_ObserveHTTPRequest(t *testing.T) {
	m := New()

	m.ObserveHTTPRequest("/api/tasks/:id", "GET", 404, 5*time.Millisecond)
	m.ObserveHTTPRequest("", "GET", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/tasks/:id", "GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("unmatched", "GET", "404")))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "taskmind_http_requests_total")
	assert.Contains(t, names, "go_goroutines")
}
