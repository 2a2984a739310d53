// Package datasync reconciles the local phrasebook with the remote ledger.
package datasync

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/jugaadu/internal/geo"
	"github.com/at-ishikawa/jugaadu/internal/ledger"
	"github.com/at-ishikawa/jugaadu/internal/phrasebook"
)

// timestampFormat is the compact form written into ledger rows.
const timestampFormat = "2006-01-02 15:04:05"

// MergeResult tracks counts for one pull-merge pass.
type MergeResult struct {
	Added   int
	Skipped int
}

// Reconciler merges remote ledger rows into the local phrasebook and pushes
// new contributions upstream. The merge is one-directional: a remote row
// never overwrites an entry that already exists locally.
type Reconciler struct {
	ledgerClient ledger.Client
	repo         phrasebook.PhraseRepository
	writer       io.Writer

	now func() time.Time
}

// NewReconciler creates a new Reconciler.
func NewReconciler(ledgerClient ledger.Client, repo phrasebook.PhraseRepository, writer io.Writer) *Reconciler {
	return &Reconciler{
		ledgerClient: ledgerClient,
		repo:         repo,
		writer:       writer,
		now:          time.Now,
	}
}

// PullMerge fetches all remote rows and inserts any phrase unknown locally.
// The updated mapping is persisted only when at least one row was added.
// Rows merged in memory before a persistence failure are not rolled back;
// the merge is best-effort, not transactional.
func (r *Reconciler) PullMerge(ctx context.Context, book phrasebook.PhraseBook) (*MergeResult, error) {
	rows, err := r.ledgerClient.FetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledgerClient.FetchRows > %w", err)
	}

	result := &MergeResult{}
	for _, row := range rows {
		key := phrasebook.NormalizeKey(row.LocalPhrase)
		if key == "" {
			continue
		}
		if book.Contains(key) {
			_, _ = fmt.Fprintf(r.writer, "  [SKIP]  %q\n", key)
			result.Skipped++
			continue
		}
		book.Add(row.LocalPhrase, row.StandardPhrase)
		_, _ = fmt.Fprintf(r.writer, "  [NEW]  %q (%s)\n", key, book[key])
		result.Added++
	}

	if result.Added > 0 {
		if err := r.repo.Save(ctx, book); err != nil {
			return result, fmt.Errorf("repo.Save > %w", err)
		}
	}
	return result, nil
}

// PushContribution appends one row with the current timestamp and a
// "lat, lng" or "Unknown" location string. The corresponding local write has
// already been persisted when this is called; a push failure is reported but
// never reverses it.
func (r *Reconciler) PushContribution(ctx context.Context, localPhrase, standardPhrase string, location *geo.Location) error {
	row := ledger.Row{
		LocalPhrase:    localPhrase,
		StandardPhrase: standardPhrase,
		Timestamp:      r.now().Format(timestampFormat),
		Location:       geo.FormatCoordinates(location),
	}
	if err := r.ledgerClient.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("ledgerClient.AppendRow > %w", err)
	}
	return nil
}
