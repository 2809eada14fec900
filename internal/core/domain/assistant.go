package domain

import (
	"errors"
	"fmt"
)

type Intent string

const (
	IntentSuggest  Intent = "suggest"
	IntentGenerate Intent = "generate"
	IntentAnalyze  Intent = "analyze"
)

// GenerationParams bounds a single completion.
type GenerationParams struct {
	MaxTokens   int
	Temperature float64
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Completion struct {
	Text  string
	Usage Usage
}

// SuggestTask is the subset of a task the assistant reasons about.
type SuggestTask struct {
	Title       string
	Description string
	Priority    string
	Category    string
	DueDate     string
}

type SuggestInput struct {
	Task    SuggestTask
	Context string
}

type GenerateInput struct {
	Description    string
	ProjectContext string
}

// TaskSummary is serialized verbatim into the workload prompt.
type TaskSummary struct {
	Title             string `json:"title"`
	Priority          string `json:"priority,omitempty"`
	Status            string `json:"status,omitempty"`
	EstimatedDuration *int   `json:"estimatedDuration,omitempty"`
	DueDate           string `json:"dueDate,omitempty"`
}

type SuggestResult struct {
	SuggestionText string
	Usage          Usage
}

type GenerateResult struct {
	DraftTasks []DraftTask
	Usage      Usage
}

type AnalyzeResult struct {
	AnalysisText string
	TaskCount    int
	Usage        Usage
}

type ProviderFailure int

const (
	ProviderFailureUnknown ProviderFailure = iota
	ProviderFailureQuota
	ProviderFailureAuth
)

// ProviderError is what a ModelClient returns when the provider rejected or
// could not serve a call.
type ProviderError struct {
	Failure    ProviderFailure
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider error (status %d, code %q): %s", e.StatusCode, e.Code, msg)
	}
	return "provider error: " + msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func AsProviderError(err error) (*ProviderError, bool) {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr, true
	}
	return nil, false
}
