// Package activitylog records successfully answered voice translation queries.
package activitylog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/jugaadu/internal/audio"
	"github.com/at-ishikawa/jugaadu/internal/geo"
	"github.com/at-ishikawa/jugaadu/internal/inference"
	"github.com/at-ishikawa/jugaadu/internal/logbook"
)

// identifierFormat is the compact timestamp used for entry identifiers and
// audio artifact names.
const identifierFormat = "20060102_150405"

// Entry is one logged voice translation. The identifier carries the compact
// timestamp form; CreatedAt carries the ISO form.
type Entry struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Query       string   `yaml:"query"`
	Result      string   `yaml:"result"`
	Latitude    *float64 `yaml:"latitude"`
	Longitude   *float64 `yaml:"longitude"`
	AudioPath   string   `yaml:"audio_path"`
	CreatedAt   string   `yaml:"created_at"`
}

// Logger appends translation activity entries. Logging is fire-and-forget:
// it runs only after the result was already shown, and its failure must never
// take the translation away from the user.
type Logger struct {
	summarizer inference.Client
	audioStore *audio.Store
	logFile    string

	now func() time.Time
}

// NewLogger creates a new Logger.
func NewLogger(summarizer inference.Client, audioStore *audio.Store, logFile string) *Logger {
	return &Logger{
		summarizer: summarizer,
		audioStore: audioStore,
		logFile:    logFile,
		now:        time.Now,
	}
}

// Log persists one voice translation event: a best-effort summary of the
// query, the audio artifact under a timestamp identifier, and the rewritten
// log file. Callers invoke it only for voice queries that resolved to a real
// translation.
func (l *Logger) Log(ctx context.Context, audioBytes []byte, originalText, translatedText string, location *geo.Location) error {
	summary, err := l.summarizer.Summarize(ctx, originalText)
	if err != nil {
		slog.Default().Warn("summarization failed, using placeholders",
			"error", err,
		)
		summary = inference.PlaceholderSummary()
	}

	createdAt := l.now()
	identifier := createdAt.Format(identifierFormat)

	audioPath, err := l.audioStore.Save(identifier, audioBytes)
	if err != nil {
		return fmt.Errorf("audioStore.Save > %w", err)
	}

	entry := Entry{
		ID:          identifier,
		Title:       summary.Title,
		Description: summary.Description,
		Query:       originalText,
		Result:      translatedText,
		AudioPath:   audioPath,
		CreatedAt:   createdAt.Format(time.RFC3339),
	}
	if location != nil {
		entry.Latitude = &location.Lat
		entry.Longitude = &location.Lng
	}

	if _, err := logbook.AppendRecord(l.logFile, entry); err != nil {
		return fmt.Errorf("logbook.AppendRecord > %w", err)
	}
	return nil
}
