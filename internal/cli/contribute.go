package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/at-ishikawa/jugaadu/internal/contribution"
	"github.com/at-ishikawa/jugaadu/internal/datasync"
	"github.com/at-ishikawa/jugaadu/internal/geo"
	"github.com/at-ishikawa/jugaadu/internal/phrasebook"
)

// ContributeCLI manages the interactive contribution session.
type ContributeCLI struct {
	*TranslatorCLI
	pipeline *contribution.Pipeline
}

// NewContributeCLI creates a new contribute session. pipeline may be nil;
// voice contributions are then unavailable.
func NewContributeCLI(
	ctx context.Context,
	repo phrasebook.PhraseRepository,
	reconciler *datasync.Reconciler,
	locator geo.Locator,
	pipeline *contribution.Pipeline,
	syncOnStartup bool,
) (*ContributeCLI, error) {
	baseCLI, err := newTranslatorCLI(ctx, repo, reconciler, locator, syncOnStartup)
	if err != nil {
		return nil, err
	}

	return &ContributeCLI{
		TranslatorCLI: baseCLI,
		pipeline:      pipeline,
	}, nil
}

func (r *ContributeCLI) Session(ctx context.Context) error {
	localPhrase, err := r.readLine("Local/colloquial phrase (or 'voice <path>', 'quit'): ")
	if err != nil {
		return err
	}
	if localPhrase == "quit" || localPhrase == "exit" {
		fmt.Fprintln(r.stdoutWriter, "Contribution session ended.")
		return errEnd
	}

	var attempt *contribution.Attempt
	if path, ok := strings.CutPrefix(localPhrase, voicePrefix); ok {
		attempt, err = r.runPipeline(ctx, strings.TrimSpace(path))
		if err != nil {
			fmt.Fprintf(r.stdoutWriter, "%v\n", err)
			return nil
		}
		localPhrase = attempt.Transcript
		fmt.Fprintf(r.stdoutWriter, "Heard: %s\n", localPhrase)
		if attempt.Summary.Title != "" {
			fmt.Fprintf(r.stdoutWriter, "Summary: %s - %s\n", attempt.Summary.Title, attempt.Summary.Description)
		}
	}

	standardPhrase, err := r.readLine("Standard equivalent: ")
	if err != nil {
		return err
	}

	// Validation happens before anything is persisted.
	if strings.TrimSpace(localPhrase) == "" || strings.TrimSpace(standardPhrase) == "" {
		fmt.Fprintln(r.stdoutWriter, "Please fill in both fields before submitting.")
		return nil
	}

	if err := r.repo.AddOrUpdate(ctx, r.book, localPhrase, standardPhrase); err != nil {
		return fmt.Errorf("repo.AddOrUpdate > %w", err)
	}

	if attempt != nil {
		record, err := r.pipeline.Confirm(ctx, attempt)
		if err != nil {
			fmt.Fprintf(r.stdoutWriter, "Warning: could not record the voice contribution: %v\n", err)
		} else {
			fmt.Fprintf(r.stdoutWriter, "Voice contribution #%d recorded\n", record.ID)
		}
	}

	if r.reconciler != nil {
		location := r.locate(ctx)
		if err := r.reconciler.PushContribution(ctx, localPhrase, standardPhrase, location); err != nil {
			fmt.Fprintf(r.stdoutWriter, "Warning: could not add to the remote ledger: %v\n", err)
		}
	}

	_, _ = r.bold.Fprintf(r.stdoutWriter, "Thank you! %q has been added to the translator.\n", strings.TrimSpace(localPhrase))
	return nil
}

// runPipeline drives a voice contribution attempt up to the point where the
// user can confirm it: transcription, summarization, optional geotag.
func (r *ContributeCLI) runPipeline(ctx context.Context, path string) (*contribution.Attempt, error) {
	if r.pipeline == nil {
		return nil, fmt.Errorf("voice contributions require a configured speech-to-text service")
	}

	audioBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	attempt := r.pipeline.Start(audioBytes)
	if err := r.pipeline.Transcribe(ctx, attempt); err != nil {
		return nil, fmt.Errorf("could not understand audio: %w", err)
	}
	if err := r.pipeline.Summarize(ctx, attempt); err != nil {
		return nil, fmt.Errorf("could not summarize the phrase: %w", err)
	}
	r.pipeline.AttachLocation(ctx, attempt)
	return attempt, nil
}
