package assistant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmind/internal/core/domain"
)

type fakeModelClient struct {
	mu         sync.Mutex
	calls      int
	lastSystem string
	lastPrompt string
	lastParams domain.GenerationParams
	completion domain.Completion
	err        error
}

func (f *fakeModelClient) Complete(ctx context.Context, systemInstruction, prompt string, params domain.GenerationParams) (domain.Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastSystem = systemInstruction
	f.lastPrompt = prompt
	f.lastParams = params
	if _, ok := ctx.Deadline(); !ok {
		return domain.Completion{}, errors.New("call has no deadline")
	}
	return f.completion, f.err
}

type observedCall struct {
	intent  domain.Intent
	outcome error
	usage   domain.Usage
}

type recordingObserver struct {
	calls []observedCall
}

func (r *recordingObserver) ObserveAICall(intent domain.Intent, outcome error, _ time.Duration, usage domain.Usage) {
	r.calls = append(r.calls, observedCall{intent: intent, outcome: outcome, usage: usage})
}

var testUsage = domain.Usage{PromptTokens: 120, CompletionTokens: 80, TotalTokens: 200}

func newTestOrchestrator(client *fakeModelClient, apiKey string) (*Orchestrator, *recordingObserver) {
	observer := &recordingObserver{}
	return NewOrchestrator(client, Config{APIKey: apiKey, CallTimeout: time.Second}, observer), observer
}

func TestOrchestrator_Suggest(t *testing.T) {
	client := &fakeModelClient{completion: domain.Completion{Text: "Break it into milestones.", Usage: testUsage}}
	orchestrator, observer := newTestOrchestrator(client, "sk-test")

	result, err := orchestrator.Suggest(context.Background(), domain.SuggestInput{
		Task: domain.SuggestTask{Title: "Plan offsite"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Break it into milestones.", result.SuggestionText)
	assert.Equal(t, testUsage, result.Usage)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, suggestSystemPrompt, client.lastSystem)
	assert.Equal(t, domain.GenerationParams{MaxTokens: 500, Temperature: 0.7}, client.lastParams)

	require.Len(t, observer.calls, 1)
	assert.Equal(t, domain.IntentSuggest, observer.calls[0].intent)
	assert.NoError(t, observer.calls[0].outcome)
	assert.Equal(t, testUsage, observer.calls[0].usage)
}

func TestOrchestrator_GenerateTasks(t *testing.T) {
	client := &fakeModelClient{completion: domain.Completion{
		Text:  `[{"title": "Buy domain", "priority": "high", "estimatedDuration": 15}]`,
		Usage: testUsage,
	}}
	orchestrator, _ := newTestOrchestrator(client, "sk-test")

	result, err := orchestrator.GenerateTasks(context.Background(), domain.GenerateInput{Description: "launch a blog"})

	require.NoError(t, err)
	require.Len(t, result.DraftTasks, 1)
	assert.Equal(t, "Buy domain", result.DraftTasks[0].Title)
	assert.Equal(t, domain.TaskPriorityHigh, result.DraftTasks[0].Priority)
	assert.Equal(t, testUsage, result.Usage)
	assert.Equal(t, domain.GenerationParams{MaxTokens: 800, Temperature: 0.5}, client.lastParams)
}

func TestOrchestrator_GenerateTasks_ParseFailure(t *testing.T) {
	client := &fakeModelClient{completion: domain.Completion{
		Text: `[{"title": "a"}, {"title": "b"}, {"title": "c", "priority": "urgent!!"}]`,
	}}
	orchestrator, observer := newTestOrchestrator(client, "sk-test")

	_, err := orchestrator.GenerateTasks(context.Background(), domain.GenerateInput{Description: "launch a blog"})

	require.ErrorIs(t, err, domain.ErrUpstreamParse)
	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Index)

	require.Len(t, observer.calls, 1)
	assert.ErrorIs(t, observer.calls[0].outcome, domain.ErrUpstreamParse)
}

func TestOrchestrator_AnalyzeWorkload(t *testing.T) {
	client := &fakeModelClient{completion: domain.Completion{Text: "You are overcommitted.", Usage: testUsage}}
	orchestrator, _ := newTestOrchestrator(client, "sk-test")

	result, err := orchestrator.AnalyzeWorkload(context.Background(), []domain.TaskSummary{
		{Title: "a"}, {Title: "b"}, {Title: "c"},
	})

	require.NoError(t, err)
	assert.Equal(t, "You are overcommitted.", result.AnalysisText)
	assert.Equal(t, 3, result.TaskCount)
	assert.Equal(t, domain.GenerationParams{MaxTokens: 400, Temperature: 0.6}, client.lastParams)
}

func TestOrchestrator_AnalyzeWorkload_EmptyListNeverCallsProvider(t *testing.T) {
	client := &fakeModelClient{}
	orchestrator, observer := newTestOrchestrator(client, "sk-test")

	_, err := orchestrator.AnalyzeWorkload(context.Background(), []domain.TaskSummary{})

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, client.calls)
	assert.Empty(t, observer.calls)
}

func TestOrchestrator_MissingCredentialNeverCallsProvider(t *testing.T) {
	client := &fakeModelClient{completion: domain.Completion{Text: "unused"}}
	orchestrator, observer := newTestOrchestrator(client, "  ")

	_, err := orchestrator.Suggest(context.Background(), domain.SuggestInput{Task: domain.SuggestTask{Title: "x"}})
	require.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = orchestrator.GenerateTasks(context.Background(), domain.GenerateInput{Description: "x"})
	require.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = orchestrator.AnalyzeWorkload(context.Background(), []domain.TaskSummary{{Title: "x"}})
	require.ErrorIs(t, err, domain.ErrConfiguration)

	assert.Zero(t, client.calls)
	assert.Empty(t, observer.calls)
}

func TestOrchestrator_InvalidInputBeatsMissingCredential(t *testing.T) {
	client := &fakeModelClient{}
	orchestrator, _ := newTestOrchestrator(client, "")

	_, err := orchestrator.Suggest(context.Background(), domain.SuggestInput{})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, client.calls)
}

func TestOrchestrator_MapsProviderFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{
			name: "quota",
			err:  &domain.ProviderError{Failure: domain.ProviderFailureQuota, StatusCode: 429, Code: "insufficient_quota"},
			kind: domain.ErrUpstreamQuota,
		},
		{
			name: "auth",
			err:  &domain.ProviderError{Failure: domain.ProviderFailureAuth, StatusCode: 401, Code: "invalid_api_key"},
			kind: domain.ErrUpstreamAuth,
		},
		{
			name: "other provider error",
			err:  &domain.ProviderError{Failure: domain.ProviderFailureUnknown, StatusCode: 503},
			kind: domain.ErrInternal,
		},
		{
			name: "timeout",
			err:  context.DeadlineExceeded,
			kind: domain.ErrInternal,
		},
		{
			name: "transport",
			err:  errors.New("connection reset"),
			kind: domain.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeModelClient{err: tt.err}
			orchestrator, observer := newTestOrchestrator(client, "sk-test")

			_, err := orchestrator.Suggest(context.Background(), domain.SuggestInput{Task: domain.SuggestTask{Title: "x"}})

			require.Error(t, err)
			assert.Equal(t, tt.kind, domain.KindOf(err))
			assert.Equal(t, 1, client.calls, "no retries")
			require.Len(t, observer.calls, 1)
			assert.Equal(t, tt.kind, domain.KindOf(observer.calls[0].outcome))
		})
	}
}

func TestOrchestrator_EmptyTextIsParseFailure(t *testing.T) {
	client := &fakeModelClient{completion: domain.Completion{Text: "   "}}
	orchestrator, _ := newTestOrchestrator(client, "sk-test")

	_, err := orchestrator.AnalyzeWorkload(context.Background(), []domain.TaskSummary{{Title: "x"}})

	require.ErrorIs(t, err, domain.ErrUpstreamParse)
}
