package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/jugaadu/internal/inference"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint. Used in tests.
func NewClientWithBaseURL(baseURL, apiKey, model string, retryAttempts uint) *Client {
	c := NewClient(apiKey, model, retryAttempts)
	c.httpClient.SetBaseURL(baseURL)
	return c
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on network-related errors
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// Summarize implements the inference.Client interface
func (client *Client) Summarize(ctx context.Context, text string) (inference.Summary, error) {
	var result inference.Summary
	if err := retry.Do(
		func() error {
			response, err := client.summarize(ctx, text)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.Summary{}, err
	}
	return result, nil
}

func (client *Client) summarize(ctx context.Context, text string) (inference.Summary, error) {
	systemPrompt := `You summarize a community-submitted phrase for a crowdsourced phrase dictionary.

Reply with EXACTLY two lines and nothing else:
- Line 1: a short title for the phrase (at most six words)
- Line 2: a one-sentence description of what the phrase expresses`

	requestBody := ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.3,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: text},
		},
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return inference.Summary{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return inference.Summary{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return inference.Summary{}, fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return inference.Summary{}, fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai summarize response",
		"request", requestBody,
		"response", responseBody,
	)

	return parseSummary(content), nil
}

// parseSummary splits the model output into title and description. A missing
// second line leaves the description empty rather than failing the call.
func parseSummary(content string) inference.Summary {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	summary := inference.Summary{
		Title: strings.TrimSpace(lines[0]),
	}
	if len(lines) > 1 {
		summary.Description = strings.TrimSpace(lines[1])
	}
	return summary
}
