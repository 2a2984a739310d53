// Package cli implements the interactive translate and contribute sessions.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/jugaadu/internal/datasync"
	"github.com/at-ishikawa/jugaadu/internal/geo"
	"github.com/at-ishikawa/jugaadu/internal/phrasebook"
)

// errEnd signals that the user ended the session normally.
var errEnd = errors.New("session ended")

// TranslatorCLI contains shared state for interactive sessions.
type TranslatorCLI struct {
	repo         phrasebook.PhraseRepository
	book         phrasebook.PhraseBook
	reconciler   *datasync.Reconciler
	locator      geo.Locator
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

// newTranslatorCLI loads the phrasebook and optionally merges the remote
// ledger first. A sync failure degrades to the local phrasebook only.
func newTranslatorCLI(
	ctx context.Context,
	repo phrasebook.PhraseRepository,
	reconciler *datasync.Reconciler,
	locator geo.Locator,
	syncOnStartup bool,
) (*TranslatorCLI, error) {
	book, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.Load > %w", err)
	}

	cli := &TranslatorCLI{
		repo:         repo,
		book:         book,
		reconciler:   reconciler,
		locator:      locator,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}

	if syncOnStartup && reconciler != nil {
		result, err := reconciler.PullMerge(ctx, book)
		if err != nil {
			fmt.Fprintf(cli.stdoutWriter, "Warning: could not sync with the remote ledger: %v\n", err)
			fmt.Fprintln(cli.stdoutWriter, "Using local phrasebook only")
		} else {
			fmt.Fprintf(cli.stdoutWriter, "Synced with the remote ledger: %d new, %d already known\n", result.Added, result.Skipped)
		}
	}

	return cli, nil
}

type Session interface {
	Session(context context.Context) error
}

// Run drives a session loop until the user quits or interrupts.
func (cli *TranslatorCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// readLine prompts and reads one trimmed input line.
func (cli *TranslatorCLI) readLine(prompt string) (string, error) {
	fmt.Fprint(cli.stdoutWriter, prompt)
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// locate resolves the user's location when sharing is enabled. Best-effort.
func (cli *TranslatorCLI) locate(ctx context.Context) *geo.Location {
	if cli.locator == nil {
		return nil
	}
	location, err := cli.locator.Locate(ctx)
	if err != nil {
		fmt.Fprintf(cli.stdoutWriter, "Warning: could not determine location: %v\n", err)
		return nil
	}
	return location
}
