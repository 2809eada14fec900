package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"taskmind/internal/core/domain"
	"taskmind/internal/core/ports"
)

const DefaultModel = "gpt-4o-mini"

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

type chatCompletions interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client is the ModelClient backed by the OpenAI chat completions API.
type Client struct {
	completions chatCompletions
	model       string
}

// NewClient never fails on a missing key: the credential is checked per call
// so task endpoints keep working without it.
func NewClient(cfg Config) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	client := openai.NewClient(opts...)
	return newClient(&client.Chat.Completions, cfg.Model)
}

func newClient(completions chatCompletions, model string) *Client {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{completions: completions, model: model}
}

func (c *Client) Complete(ctx context.Context, systemInstruction, prompt string, params domain.GenerationParams) (domain.Completion, error) {
	request := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(params.Temperature),
	}
	if params.MaxTokens > 0 {
		request.MaxCompletionTokens = openai.Int(int64(params.MaxTokens))
	}

	completion, err := c.completions.New(ctx, request)
	if err != nil {
		return domain.Completion{}, classifyError(err)
	}

	result := domain.Completion{
		Usage: domain.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}
	if len(completion.Choices) > 0 {
		result.Text = completion.Choices[0].Message.Content
	}
	return result, nil
}

func classifyError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	providerErr := &domain.ProviderError{
		Failure:    domain.ProviderFailureUnknown,
		StatusCode: apiErr.StatusCode,
		Code:       apiErr.Code,
		Message:    apiErr.Message,
		Err:        err,
	}
	switch {
	case apiErr.Code == "insufficient_quota" || apiErr.Code == "rate_limit_exceeded" || apiErr.StatusCode == http.StatusTooManyRequests:
		providerErr.Failure = domain.ProviderFailureQuota
	case apiErr.Code == "invalid_api_key" || apiErr.StatusCode == http.StatusUnauthorized:
		providerErr.Failure = domain.ProviderFailureAuth
	}
	return providerErr
}

var _ ports.ModelClient = (*Client)(nil)
