package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

const (
	// DefaultMaxRetryAttempts is the default number of retries for inference calls
	DefaultMaxRetryAttempts = 3

	// PlaceholderTitle and PlaceholderDescription substitute for a summary
	// when the service is unavailable and the caller chose to continue.
	PlaceholderTitle       = "Untitled"
	PlaceholderDescription = "No description available."
)

// Client interface defines the methods for AI inference operations
type Client interface {
	Summarize(ctx context.Context, text string) (Summary, error)
}

// Summary is a short title and a one-sentence description for a phrase.
type Summary struct {
	Title       string
	Description string
}

// PlaceholderSummary returns the fixed fallback summary.
func PlaceholderSummary() Summary {
	return Summary{
		Title:       PlaceholderTitle,
		Description: PlaceholderDescription,
	}
}
