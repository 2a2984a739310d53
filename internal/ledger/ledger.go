// Package ledger defines the remote shared ledger the phrasebook reconciles with.
package ledger

import (
	"context"
)

//go:generate mockgen -source=ledger.go -destination=../mocks/ledger/mock_client.go -package=mock_ledger

const (
	// DefaultMaxRetryAttempts is the default number of retries for ledger calls
	DefaultMaxRetryAttempts = 3

	// UnknownLocation is recorded when no geolocation was available for a row.
	UnknownLocation = "Unknown"
)

// Row is one remote ledger record: a phrase pair plus provenance metadata.
// The ledger is authoritative for which phrases the community has ever
// submitted; the local store is authoritative for what this instance serves.
type Row struct {
	LocalPhrase    string
	StandardPhrase string
	Timestamp      string
	Location       string
}

// Client interface defines the remote ledger operations.
// Rows are only ever read in full or appended; existing rows are never
// updated or deleted.
type Client interface {
	FetchRows(ctx context.Context) ([]Row, error)
	AppendRow(ctx context.Context, row Row) error
}
