package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskmind/internal/core/domain"
	"taskmind/internal/core/ports"
)

const defaultCallTimeout = 30 * time.Second

// Generation parameters are fixed per intent. generate runs cooler because its
// output has to be machine-readable JSON.
var (
	suggestParams  = domain.GenerationParams{MaxTokens: 500, Temperature: 0.7}
	generateParams = domain.GenerationParams{MaxTokens: 800, Temperature: 0.5}
	analyzeParams  = domain.GenerationParams{MaxTokens: 400, Temperature: 0.6}
)

type Config struct {
	// APIKey is only checked for presence; the ModelClient owns the real credential.
	APIKey      string
	CallTimeout time.Duration
}

type Orchestrator struct {
	client      ports.ModelClient
	observer    ports.AIObserver
	configured  bool
	callTimeout time.Duration
}

func NewOrchestrator(client ports.ModelClient, cfg Config, observer ports.AIObserver) *Orchestrator {
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Orchestrator{
		client:      client,
		observer:    observer,
		configured:  strings.TrimSpace(cfg.APIKey) != "",
		callTimeout: timeout,
	}
}

func (o *Orchestrator) Suggest(ctx context.Context, input domain.SuggestInput) (domain.SuggestResult, error) {
	prompt, err := BuildSuggestPrompt(input)
	if err != nil {
		return domain.SuggestResult{}, err
	}

	completion, err := o.complete(ctx, domain.IntentSuggest, prompt, suggestParams, func(c domain.Completion) error {
		_, parseErr := ParseText(c.Text)
		return parseErr
	})
	if err != nil {
		return domain.SuggestResult{}, err
	}

	return domain.SuggestResult{SuggestionText: completion.Text, Usage: completion.Usage}, nil
}

func (o *Orchestrator) GenerateTasks(ctx context.Context, input domain.GenerateInput) (domain.GenerateResult, error) {
	prompt, err := BuildGeneratePrompt(input)
	if err != nil {
		return domain.GenerateResult{}, err
	}

	var drafts []domain.DraftTask
	completion, err := o.complete(ctx, domain.IntentGenerate, prompt, generateParams, func(c domain.Completion) error {
		var parseErr error
		drafts, parseErr = ParseDraftTasks(c.Text)
		return parseErr
	})
	if err != nil {
		return domain.GenerateResult{}, err
	}

	return domain.GenerateResult{DraftTasks: drafts, Usage: completion.Usage}, nil
}

func (o *Orchestrator) AnalyzeWorkload(ctx context.Context, tasks []domain.TaskSummary) (domain.AnalyzeResult, error) {
	prompt, err := BuildAnalyzePrompt(tasks)
	if err != nil {
		return domain.AnalyzeResult{}, err
	}

	completion, err := o.complete(ctx, domain.IntentAnalyze, prompt, analyzeParams, func(c domain.Completion) error {
		_, parseErr := ParseText(c.Text)
		return parseErr
	})
	if err != nil {
		return domain.AnalyzeResult{}, err
	}

	return domain.AnalyzeResult{
		AnalysisText: completion.Text,
		TaskCount:    len(tasks),
		Usage:        completion.Usage,
	}, nil
}

// complete runs a single provider call and the intent's parser. Nothing is retried.
func (o *Orchestrator) complete(
	ctx context.Context,
	intent domain.Intent,
	prompt Prompt,
	params domain.GenerationParams,
	parse func(domain.Completion) error,
) (domain.Completion, error) {
	if !o.configured {
		return domain.Completion{}, domain.ErrProviderNotConfigured
	}

	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	start := time.Now()
	completion, err := o.client.Complete(callCtx, prompt.System, prompt.User, params)
	if err != nil {
		err = mapProviderError(err)
	} else {
		err = parse(completion)
	}
	o.observe(intent, err, time.Since(start), completion.Usage)

	if err != nil {
		zap.L().Warn("ai call failed",
			zap.String("intent", string(intent)),
			zap.String("kind", domain.KindOf(err).Error()),
			zap.Error(err),
		)
		return domain.Completion{}, err
	}
	return completion, nil
}

func (o *Orchestrator) observe(intent domain.Intent, outcome error, latency time.Duration, usage domain.Usage) {
	if o.observer == nil {
		return
	}
	o.observer.ObserveAICall(intent, outcome, latency, usage)
}

func mapProviderError(err error) error {
	if providerErr, ok := domain.AsProviderError(err); ok {
		switch providerErr.Failure {
		case domain.ProviderFailureQuota:
			return &domain.Error{Kind: domain.ErrUpstreamQuota, Message: "provider quota exceeded", Err: providerErr}
		case domain.ProviderFailureAuth:
			return &domain.Error{Kind: domain.ErrUpstreamAuth, Message: "provider rejected the credential", Err: providerErr}
		}
		return domain.NewInternalError("provider call failed", providerErr)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewInternalError("provider call timed out", err)
	}
	return domain.NewInternalError("provider call failed", err)
}

var _ ports.AssistantService = (*Orchestrator)(nil)
