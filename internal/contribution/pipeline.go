// Package contribution turns raw voice submissions into enriched, persisted
// contribution records.
package contribution

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/jugaadu/internal/audio"
	"github.com/at-ishikawa/jugaadu/internal/geo"
	"github.com/at-ishikawa/jugaadu/internal/inference"
	"github.com/at-ishikawa/jugaadu/internal/logbook"
	"github.com/at-ishikawa/jugaadu/internal/speech"
)

// State is the stage of one contribution attempt.
type State string

const (
	StateRecorded         State = "recorded"
	StateTranscribing     State = "transcribing"
	StateTranscribed      State = "transcribed"
	StateSummarizing      State = "summarizing"
	StateSummarized       State = "summarized"
	StateAwaitingLocation State = "awaiting_location"
	StateSaved            State = "saved"
	StateFailed           State = "failed"
)

// SummaryPolicy decides what a summarization failure does to the attempt.
type SummaryPolicy string

const (
	// SummaryPolicyBlock fails the attempt; nothing is persisted.
	SummaryPolicyBlock SummaryPolicy = "block"
	// SummaryPolicyPlaceholder substitutes fixed placeholder strings and
	// lets the attempt continue.
	SummaryPolicyPlaceholder SummaryPolicy = "placeholder"
)

// identifierFormat names audio artifacts; one artifact per confirmed attempt.
const identifierFormat = "20060102_150405"

// Attempt carries the transient state of one voice contribution. It lives in
// memory only; nothing is persisted until Confirm succeeds.
type Attempt struct {
	State      State
	Audio      []byte
	Transcript string
	Summary    inference.Summary
	Location   *geo.Location
}

// Pipeline orchestrates transcription, summarization, geotagging and
// persistence for voice contributions.
type Pipeline struct {
	transcriber speech.Transcriber
	summarizer  inference.Client
	locator     geo.Locator
	audioStore  *audio.Store
	logFile     string
	policy      SummaryPolicy

	now func() time.Time
}

// NewPipeline creates a new Pipeline. locator may be nil when the user has
// not enabled location sharing.
func NewPipeline(
	transcriber speech.Transcriber,
	summarizer inference.Client,
	locator geo.Locator,
	audioStore *audio.Store,
	logFile string,
	policy SummaryPolicy,
) *Pipeline {
	return &Pipeline{
		transcriber: transcriber,
		summarizer:  summarizer,
		locator:     locator,
		audioStore:  audioStore,
		logFile:     logFile,
		policy:      policy,
		now:         time.Now,
	}
}

// Start begins an attempt from raw recorded audio.
func (p *Pipeline) Start(audioBytes []byte) *Attempt {
	return &Attempt{
		State: StateRecorded,
		Audio: audioBytes,
	}
}

// Transcribe hands the recorded audio to the speech-to-text service.
// On failure the attempt is terminal and nothing will be persisted.
func (p *Pipeline) Transcribe(ctx context.Context, attempt *Attempt) error {
	if attempt.State != StateRecorded {
		return fmt.Errorf("cannot transcribe an attempt in state %q", attempt.State)
	}

	attempt.State = StateTranscribing
	transcript, err := p.transcriber.Transcribe(ctx, attempt.Audio)
	if err != nil {
		attempt.State = StateFailed
		return fmt.Errorf("transcriber.Transcribe > %w", err)
	}

	attempt.Transcript = transcript
	attempt.State = StateTranscribed
	return nil
}

// Summarize requests a title and one-sentence description for the
// transcript. A failure either fails the attempt or substitutes placeholder
// strings, depending on the configured policy.
func (p *Pipeline) Summarize(ctx context.Context, attempt *Attempt) error {
	if attempt.State != StateTranscribed {
		return fmt.Errorf("cannot summarize an attempt in state %q", attempt.State)
	}

	attempt.State = StateSummarizing
	summary, err := p.summarizer.Summarize(ctx, attempt.Transcript)
	if err != nil {
		if p.policy == SummaryPolicyPlaceholder {
			slog.Default().Warn("summarization failed, using placeholders",
				"error", err,
			)
			attempt.Summary = inference.PlaceholderSummary()
			attempt.State = StateSummarized
			return nil
		}
		attempt.State = StateFailed
		return fmt.Errorf("summarizer.Summarize > %w", err)
	}

	attempt.Summary = summary
	attempt.State = StateSummarized
	return nil
}

// AttachLocation geotags the attempt when a locator is available. A missing
// location never blocks saving; it is recorded as absent.
func (p *Pipeline) AttachLocation(ctx context.Context, attempt *Attempt) {
	if attempt.State != StateSummarized {
		return
	}
	attempt.State = StateAwaitingLocation

	if p.locator == nil {
		return
	}
	location, err := p.locator.Locate(ctx)
	if err != nil {
		slog.Default().Warn("could not determine location",
			"error", err,
		)
		return
	}
	attempt.Location = location
}

// Confirm persists the attempt: the audio artifact is written under a
// timestamp identifier, a record with the next sequential identifier is
// built, and the contribution log is rewritten with it appended.
//
// Confirm is not idempotent: confirming the same attempt twice produces two
// records. Callers must confirm at most once per attempt.
func (p *Pipeline) Confirm(ctx context.Context, attempt *Attempt) (*Record, error) {
	if attempt.State != StateSummarized && attempt.State != StateAwaitingLocation {
		return nil, fmt.Errorf("cannot save an attempt in state %q", attempt.State)
	}

	existing, err := logbook.ReadRecords[Record](p.logFile)
	if err != nil {
		return nil, fmt.Errorf("logbook.ReadRecords > %w", err)
	}

	createdAt := p.now()
	audioPath, err := p.audioStore.Save(createdAt.Format(identifierFormat), attempt.Audio)
	if err != nil {
		return nil, fmt.Errorf("audioStore.Save > %w", err)
	}

	record := Record{
		ID:          len(existing) + 1,
		Text:        attempt.Transcript,
		Title:       attempt.Summary.Title,
		Description: attempt.Summary.Description,
		AudioPath:   audioPath,
		CreatedAt:   createdAt,
	}
	if attempt.Location != nil {
		record.Latitude = &attempt.Location.Lat
		record.Longitude = &attempt.Location.Lng
	}

	if _, err := logbook.AppendRecord(p.logFile, record); err != nil {
		// Keep the failed attempt all-or-nothing: drop the artifact written above
		if removeErr := p.audioStore.Remove(audioPath); removeErr != nil {
			slog.Default().Warn("could not remove orphan audio artifact",
				"path", audioPath,
				"error", removeErr,
			)
		}
		return nil, fmt.Errorf("logbook.AppendRecord > %w", err)
	}

	attempt.State = StateSaved
	return &record, nil
}
