package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"UploadTimeAdvisor/internal/config"
	"UploadTimeAdvisor/internal/domain"
	"UploadTimeAdvisor/internal/ports"
)

var (
	// ErrRateLimited means the provider asked us to slow down.
	ErrRateLimited = errors.New("text generation rate limited")
	// ErrQuotaExceeded means the account has no remaining quota.
	ErrQuotaExceeded = errors.New("text generation quota exceeded")
	// ErrUnauthorized means the API key was rejected.
	ErrUnauthorized = errors.New("text generation unauthorized")
)

const quotaCode = "insufficient_quota"

// ChatGPTClient implements ports.TextGenerator backed by OpenAI-compatible APIs.
type ChatGPTClient struct {
	client       *openai.Client
	systemPrompt string
	limiter      *rate.Limiter
	logger       *slog.Logger
}

var _ ports.TextGenerator = (*ChatGPTClient)(nil)

// NewChatGPTClient builds a client from configuration.
func NewChatGPTClient(cfg config.OpenAIConfig, logger *slog.Logger) (*ChatGPTClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("chatgpt client misconfigured: api key is empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	return &ChatGPTClient{
		client:       openai.NewClientWithConfig(clientConfig),
		systemPrompt: strings.TrimSpace(cfg.SystemPrompt),
		limiter:      limiter,
		logger:       logger.With("component", "chatgpt"),
	}, nil
}

// Generate sends the prompt as a single user message and returns the first choice.
func (c *ChatGPTClient) Generate(ctx context.Context, req domain.GenerationRequest) (domain.Completion, error) {
	if c == nil {
		return domain.Completion{}, fmt.Errorf("chatgpt client is nil")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.Completion{}, fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if c.systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: c.systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	started := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return domain.Completion{}, fmt.Errorf("create chat completion: %w", classify(err))
	}
	if len(resp.Choices) == 0 {
		return domain.Completion{}, fmt.Errorf("empty chat response")
	}

	c.logger.Debug("chat completion done",
		"model", resp.Model,
		"total_tokens", resp.Usage.TotalTokens,
		"elapsed", time.Since(started))

	return domain.Completion{
		Text:  strings.TrimSpace(resp.Choices[0].Message.Content),
		Model: resp.Model,
		Usage: domain.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// classify tags provider errors with a sentinel while keeping the original
// error in the chain.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return tag(err, apiErr.HTTPStatusCode, apiErr.Type, fmt.Sprint(apiErr.Code))
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return tag(err, reqErr.HTTPStatusCode, "", "")
	}
	return err
}

func tag(err error, status int, errType, code string) error {
	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case errType == quotaCode || code == quotaCode:
		return fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	default:
		return err
	}
}
