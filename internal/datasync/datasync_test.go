package datasync

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/jugaadu/internal/geo"
	"github.com/at-ishikawa/jugaadu/internal/ledger"
	mock_ledger "github.com/at-ishikawa/jugaadu/internal/mocks/ledger"
	mock_phrasebook "github.com/at-ishikawa/jugaadu/internal/mocks/phrasebook"
	"github.com/at-ishikawa/jugaadu/internal/phrasebook"
)

func TestReconciler_PullMerge(t *testing.T) {
	tests := []struct {
		name     string
		book     phrasebook.PhraseBook
		setup    func(ledgerClient *mock_ledger.MockClient, repo *mock_phrasebook.MockPhraseRepository)
		want     *MergeResult
		wantBook phrasebook.PhraseBook
		wantErr  string
	}{
		{
			name: "unknown remote phrases are merged and persisted",
			book: phrasebook.PhraseBook{
				"chalega": "It will work / That's acceptable.",
			},
			setup: func(ledgerClient *mock_ledger.MockClient, repo *mock_phrasebook.MockPhraseRepository) {
				ledgerClient.EXPECT().FetchRows(gomock.Any()).Return([]ledger.Row{
					{LocalPhrase: "Jugaad", StandardPhrase: "A creative workaround."},
					{LocalPhrase: "chalega", StandardPhrase: "REMOTE VALUE"},
				}, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: &MergeResult{Added: 1, Skipped: 1},
			wantBook: phrasebook.PhraseBook{
				"chalega": "It will work / That's acceptable.",
				"jugaad":  "A creative workaround.",
			},
		},
		{
			name: "existing entries are never overwritten",
			book: phrasebook.PhraseBook{
				"oye!": "Hey!",
			},
			setup: func(ledgerClient *mock_ledger.MockClient, repo *mock_phrasebook.MockPhraseRepository) {
				ledgerClient.EXPECT().FetchRows(gomock.Any()).Return([]ledger.Row{
					{LocalPhrase: "  OYE!  ", StandardPhrase: "A different standard form."},
				}, nil)
			},
			want: &MergeResult{Added: 0, Skipped: 1},
			wantBook: phrasebook.PhraseBook{
				"oye!": "Hey!",
			},
		},
		{
			name: "rows with empty local phrases are ignored",
			book: phrasebook.PhraseBook{},
			setup: func(ledgerClient *mock_ledger.MockClient, repo *mock_phrasebook.MockPhraseRepository) {
				ledgerClient.EXPECT().FetchRows(gomock.Any()).Return([]ledger.Row{
					{LocalPhrase: "   ", StandardPhrase: "Orphaned value."},
				}, nil)
			},
			want:     &MergeResult{Added: 0, Skipped: 0},
			wantBook: phrasebook.PhraseBook{},
		},
		{
			name: "nothing is persisted when no row was added",
			book: phrasebook.PhraseBook{
				"sab theek hai": "Everything is fine.",
			},
			setup: func(ledgerClient *mock_ledger.MockClient, repo *mock_phrasebook.MockPhraseRepository) {
				ledgerClient.EXPECT().FetchRows(gomock.Any()).Return([]ledger.Row{
					{LocalPhrase: "sab theek hai", StandardPhrase: "Everything is fine."},
				}, nil)
			},
			want: &MergeResult{Added: 0, Skipped: 1},
			wantBook: phrasebook.PhraseBook{
				"sab theek hai": "Everything is fine.",
			},
		},
		{
			name: "fetch failure",
			book: phrasebook.PhraseBook{},
			setup: func(ledgerClient *mock_ledger.MockClient, repo *mock_phrasebook.MockPhraseRepository) {
				ledgerClient.EXPECT().FetchRows(gomock.Any()).Return(nil, fmt.Errorf("response error 503"))
			},
			wantErr:  "ledgerClient.FetchRows",
			wantBook: phrasebook.PhraseBook{},
		},
		{
			name: "persistence failure still reports the merged counts",
			book: phrasebook.PhraseBook{},
			setup: func(ledgerClient *mock_ledger.MockClient, repo *mock_phrasebook.MockPhraseRepository) {
				ledgerClient.EXPECT().FetchRows(gomock.Any()).Return([]ledger.Row{
					{LocalPhrase: "jugaad", StandardPhrase: "A creative workaround."},
				}, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(fmt.Errorf("disk full"))
			},
			wantErr: "repo.Save",
			wantBook: phrasebook.PhraseBook{
				"jugaad": "A creative workaround.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ledgerClient := mock_ledger.NewMockClient(ctrl)
			repo := mock_phrasebook.NewMockPhraseRepository(ctrl)
			tt.setup(ledgerClient, repo)

			var output bytes.Buffer
			reconciler := NewReconciler(ledgerClient, repo, &output)
			got, err := reconciler.PullMerge(context.Background(), tt.book)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.wantBook, tt.book)
		})
	}
}

func TestReconciler_PullMerge_Output(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledgerClient := mock_ledger.NewMockClient(ctrl)
	repo := mock_phrasebook.NewMockPhraseRepository(ctrl)

	ledgerClient.EXPECT().FetchRows(gomock.Any()).Return([]ledger.Row{
		{LocalPhrase: "jugaad", StandardPhrase: "A creative workaround."},
		{LocalPhrase: "oye!", StandardPhrase: "Hey!"},
	}, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	book := phrasebook.PhraseBook{"oye!": "Hey!"}

	var output bytes.Buffer
	reconciler := NewReconciler(ledgerClient, repo, &output)
	_, err := reconciler.PullMerge(context.Background(), book)
	require.NoError(t, err)

	assert.Contains(t, output.String(), `  [NEW]  "jugaad" (A creative workaround.)`)
	assert.Contains(t, output.String(), `  [SKIP]  "oye!"`)
}

func TestReconciler_PushContribution(t *testing.T) {
	now := time.Date(2025, 11, 2, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		location *geo.Location
		setup    func(ledgerClient *mock_ledger.MockClient)
		wantErr  bool
	}{
		{
			name:     "row with coordinates",
			location: &geo.Location{Lat: 19.07, Lng: 72.87},
			setup: func(ledgerClient *mock_ledger.MockClient) {
				ledgerClient.EXPECT().AppendRow(gomock.Any(), ledger.Row{
					LocalPhrase:    "jugaad",
					StandardPhrase: "A creative workaround.",
					Timestamp:      "2025-11-02 15:04:05",
					Location:       "19.07, 72.87",
				}).Return(nil)
			},
		},
		{
			name:     "row without a location",
			location: nil,
			setup: func(ledgerClient *mock_ledger.MockClient) {
				ledgerClient.EXPECT().AppendRow(gomock.Any(), ledger.Row{
					LocalPhrase:    "jugaad",
					StandardPhrase: "A creative workaround.",
					Timestamp:      "2025-11-02 15:04:05",
					Location:       "Unknown",
				}).Return(nil)
			},
		},
		{
			name:     "append failure",
			location: nil,
			setup: func(ledgerClient *mock_ledger.MockClient) {
				ledgerClient.EXPECT().AppendRow(gomock.Any(), gomock.Any()).Return(fmt.Errorf("response error 500"))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ledgerClient := mock_ledger.NewMockClient(ctrl)
			repo := mock_phrasebook.NewMockPhraseRepository(ctrl)
			tt.setup(ledgerClient)

			reconciler := NewReconciler(ledgerClient, repo, &bytes.Buffer{})
			reconciler.now = func() time.Time { return now }

			err := reconciler.PushContribution(context.Background(), "jugaad", "A creative workaround.", tt.location)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
