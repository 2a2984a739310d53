package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/at-ishikawa/jugaadu/internal/activitylog"
	"github.com/at-ishikawa/jugaadu/internal/audio"
	"github.com/at-ishikawa/jugaadu/internal/datasync"
	"github.com/at-ishikawa/jugaadu/internal/geo"
	"github.com/at-ishikawa/jugaadu/internal/phrasebook"
	"github.com/at-ishikawa/jugaadu/internal/speech"
)

// voicePrefix marks an input line as a path to a recorded audio file.
const voicePrefix = "voice "

// TranslateCLI manages the interactive translation session.
type TranslateCLI struct {
	*TranslatorCLI
	transcriber    speech.Transcriber
	synthesizer    speech.Synthesizer
	speechStore    *audio.Store
	activityLogger *activitylog.Logger
	speak          bool
}

// NewTranslateCLI creates a new translate session. transcriber, synthesizer
// and activityLogger may be nil; the matching features are then unavailable.
func NewTranslateCLI(
	ctx context.Context,
	repo phrasebook.PhraseRepository,
	reconciler *datasync.Reconciler,
	locator geo.Locator,
	transcriber speech.Transcriber,
	synthesizer speech.Synthesizer,
	speechStore *audio.Store,
	activityLogger *activitylog.Logger,
	syncOnStartup bool,
	speak bool,
) (*TranslateCLI, error) {
	baseCLI, err := newTranslatorCLI(ctx, repo, reconciler, locator, syncOnStartup)
	if err != nil {
		return nil, err
	}

	return &TranslateCLI{
		TranslatorCLI:  baseCLI,
		transcriber:    transcriber,
		synthesizer:    synthesizer,
		speechStore:    speechStore,
		activityLogger: activityLogger,
		speak:          speak,
	}, nil
}

func (r *TranslateCLI) Session(ctx context.Context) error {
	directionInput, err := r.readLine("Direction ([1] local to standard, [2] standard to local, or 'quit'): ")
	if err != nil {
		return err
	}

	var direction phrasebook.Direction
	switch directionInput {
	case "quit", "exit":
		fmt.Fprintln(r.stdoutWriter, "Translation session ended.")
		return errEnd
	case "1", "":
		direction = phrasebook.DirectionLocalToStandard
	case "2":
		direction = phrasebook.DirectionStandardToLocal
	default:
		fmt.Fprintf(r.stdoutWriter, "Unknown direction %q\n", directionInput)
		return nil
	}

	input, err := r.readLine("Phrase (or 'voice <path>' to transcribe a recording): ")
	if err != nil {
		return err
	}

	var audioBytes []byte
	if path, ok := strings.CutPrefix(input, voicePrefix); ok {
		input, audioBytes, err = r.transcribeFile(ctx, strings.TrimSpace(path))
		if err != nil {
			fmt.Fprintf(r.stdoutWriter, "Could not understand audio: %v\n", err)
			return nil
		}
		fmt.Fprintf(r.stdoutWriter, "Heard: %s\n", input)
	}

	if input == "" {
		fmt.Fprintln(r.stdoutWriter, "Please enter a phrase to translate.")
		return nil
	}

	result, found := r.book.Lookup(direction, input)
	fmt.Fprintln(r.stdoutWriter, "Translation:")
	if found {
		_, _ = r.bold.Fprintln(r.stdoutWriter, result)
	} else {
		_, _ = r.italic.Fprintln(r.stdoutWriter, r.book.Translate(direction, input))
	}

	if found && r.speak {
		r.speakResult(ctx, result)
	}

	// Activity is logged only for voice queries that resolved to a real
	// translation, and strictly after the result was shown.
	if found && audioBytes != nil && r.activityLogger != nil {
		location := r.locate(ctx)
		if err := r.activityLogger.Log(ctx, audioBytes, input, result, location); err != nil {
			fmt.Fprintf(r.stdoutWriter, "Warning: could not log the translation: %v\n", err)
		}
		r.pushActivity(ctx, direction, input, result, location)
	}

	return nil
}

func (r *TranslateCLI) transcribeFile(ctx context.Context, path string) (string, []byte, error) {
	if r.transcriber == nil {
		return "", nil, fmt.Errorf("voice input requires a configured speech-to-text service")
	}
	audioBytes, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	text, err := r.transcriber.Transcribe(ctx, audioBytes)
	if err != nil {
		return "", nil, fmt.Errorf("transcriber.Transcribe > %w", err)
	}
	return text, audioBytes, nil
}

// speakResult synthesizes the translation and stores the spoken audio next to
// the activity artifacts. Best-effort.
func (r *TranslateCLI) speakResult(ctx context.Context, result string) {
	if r.synthesizer == nil || r.speechStore == nil {
		fmt.Fprintln(r.stdoutWriter, "Warning: speech synthesis is not configured")
		return
	}
	spoken, err := r.synthesizer.Synthesize(ctx, result)
	if err != nil {
		fmt.Fprintf(r.stdoutWriter, "Warning: could not synthesize speech: %v\n", err)
		return
	}
	path, err := r.speechStore.Save("spoken_"+time.Now().Format("20060102_150405"), spoken)
	if err != nil {
		fmt.Fprintf(r.stdoutWriter, "Warning: could not store spoken audio: %v\n", err)
		return
	}
	fmt.Fprintf(r.stdoutWriter, "Spoken translation saved to %s\n", path)
}

// pushActivity appends the answered query to the remote ledger when location
// sharing produced a position, mirroring the contribution row shape.
func (r *TranslateCLI) pushActivity(ctx context.Context, direction phrasebook.Direction, query, result string, location *geo.Location) {
	if r.reconciler == nil || location == nil {
		return
	}
	localPhrase, standardPhrase := query, result
	if direction == phrasebook.DirectionStandardToLocal {
		localPhrase, standardPhrase = result, query
	}
	if err := r.reconciler.PushContribution(ctx, localPhrase, standardPhrase, location); err != nil {
		fmt.Fprintf(r.stdoutWriter, "Warning: could not add to the remote ledger: %v\n", err)
	}
}
