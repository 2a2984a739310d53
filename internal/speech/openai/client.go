// Package openai implements the speech interfaces against the OpenAI audio
// endpoints: /audio/transcriptions for speech-to-text and /audio/speech for
// synthesis.
package openai

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

type Client struct {
	httpClient       *resty.Client
	transcribeModel  string
	speechModel      string
	voice            string
	maxRetryAttempts uint
}

func NewClient(apiKey, transcribeModel, speechModel, voice string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)

	return &Client{
		httpClient:       client,
		transcribeModel:  transcribeModel,
		speechModel:      speechModel,
		voice:            voice,
		maxRetryAttempts: retryAttempts,
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint. Used in tests.
func NewClientWithBaseURL(baseURL, apiKey, transcribeModel, speechModel, voice string, retryAttempts uint) *Client {
	c := NewClient(apiKey, transcribeModel, speechModel, voice, retryAttempts)
	c.httpClient.SetBaseURL(baseURL)
	return c
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

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

// Transcribe implements the speech.Transcriber interface
func (client *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var result string
	if err := retry.Do(
		func() error {
			text, err := client.transcribe(ctx, audio)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = text
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return "", err
	}
	return result, nil
}

func (client *Client) transcribe(ctx context.Context, audio []byte) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetFileReader("file", "audio.wav", bytes.NewReader(audio)).
		SetMultipartFormData(map[string]string{
			"model": client.transcribeModel,
		}).
		SetResult(&transcriptionResponse{}).
		Post("/audio/transcriptions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*transcriptionResponse)
	if responseBody == nil {
		return "", fmt.Errorf("empty response body: %s", response.String())
	}

	text := strings.TrimSpace(responseBody.Text)
	if text == "" {
		return "", fmt.Errorf("could not understand audio")
	}
	return text, nil
}

// Synthesize implements the speech.Synthesizer interface
func (client *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	var result []byte
	if err := retry.Do(
		func() error {
			audio, err := client.synthesize(ctx, text)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = audio
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}
	return result, nil
}

func (client *Client) synthesize(ctx context.Context, text string) ([]byte, error) {
	requestBody := speechRequest{
		Model:          client.speechModel,
		Input:          text,
		Voice:          client.voice,
		ResponseFormat: "wav",
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(requestBody).
		Post("/audio/speech")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	audio := response.Bytes()
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio response")
	}
	return audio, nil
}
