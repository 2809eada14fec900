package ports

import (
	"context"
	"time"

	"taskmind/internal/core/domain"
)

// ModelClient performs one completion against the generative-AI provider.
// Provider-side rejections are returned as *domain.ProviderError.
type ModelClient interface {
	Complete(ctx context.Context, systemInstruction, prompt string, params domain.GenerationParams) (domain.Completion, error)
}

type AssistantService interface {
	Suggest(ctx context.Context, input domain.SuggestInput) (domain.SuggestResult, error)
	GenerateTasks(ctx context.Context, input domain.GenerateInput) (domain.GenerateResult, error)
	AnalyzeWorkload(ctx context.Context, tasks []domain.TaskSummary) (domain.AnalyzeResult, error)
}

// AIObserver receives one notification per provider call. outcome is nil on success.
type AIObserver interface {
	ObserveAICall(intent domain.Intent, outcome error, latency time.Duration, usage domain.Usage)
}
