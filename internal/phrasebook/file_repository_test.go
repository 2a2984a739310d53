package phrasebook

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePhraseRepository_Load(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, path string)
		want  PhraseBook
	}{
		{
			name:  "missing file seeds the starter set",
			setup: func(t *testing.T, path string) {},
			want:  SeedPhrases(),
		},
		{
			name: "existing file is read as-is",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte(`{"jugaad": "A creative workaround."}`), 0644))
			},
			want: PhraseBook{"jugaad": "A creative workaround."},
		},
		{
			name: "corrupt file yields an empty mapping",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))
			},
			want: PhraseBook{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "phrases_db.json")
			tt.setup(t, path)

			repo := NewFilePhraseRepository(path)
			got, err := repo.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilePhraseRepository_Load_SeedIsPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases_db.json")
	repo := NewFilePhraseRepository(path)

	first, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.FileExists(t, path)

	// A second load reads the persisted copy instead of reseeding.
	second, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFilePhraseRepository_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "phrases_db.json")
	repo := NewFilePhraseRepository(path)

	book := PhraseBook{}
	book.Add("tuition laga lo", "Get a tutor / Start tuition classes.")
	book.Add("jugaad", "A creative workaround.")
	require.NoError(t, repo.Save(context.Background(), book))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	var got PhraseBook
	require.NoError(t, json.Unmarshal(contents, &got))
	assert.Equal(t, book, got)

	// Saving the same mapping again leaves the contents unchanged.
	require.NoError(t, repo.Save(context.Background(), book))
	reread, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, book, reread)
}

func TestFilePhraseRepository_Save_DoesNotEscapeText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases_db.json")
	repo := NewFilePhraseRepository(path)

	book := PhraseBook{}
	book.Add("kya scene hai?", "What's up? <casual>")
	require.NoError(t, repo.Save(context.Background(), book))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "<casual>")
	assert.NotContains(t, string(contents), `\u003c`)
}

func TestFilePhraseRepository_AddOrUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phrases_db.json")
	repo := NewFilePhraseRepository(path)

	book, err := repo.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.AddOrUpdate(context.Background(), book, "  Full Toss  ", "An easy opportunity."))
	assert.Equal(t, "An easy opportunity.", book["full toss"])

	reread, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, book, reread)
}
