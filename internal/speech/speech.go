// Package speech defines the speech-to-text and text-to-speech collaborators.
package speech

import (
	"context"
)

//go:generate mockgen -source=speech.go -destination=../mocks/speech/mock_providers.go -package=mock_speech

// DefaultMaxRetryAttempts is the default number of retries for speech calls
const DefaultMaxRetryAttempts = 3

// Transcriber turns raw audio bytes into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Synthesizer turns text into audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
