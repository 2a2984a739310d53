package phrasebook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FilePhraseRepository persists the phrase mapping as a JSON file.
// The file is rewritten wholesale on every mutation and non-ASCII text is
// stored as-is.
type FilePhraseRepository struct {
	path string
}

// NewFilePhraseRepository creates a new FilePhraseRepository.
func NewFilePhraseRepository(path string) *FilePhraseRepository {
	return &FilePhraseRepository{path: path}
}

// Load reads the mapping from disk. A missing file seeds and persists the
// starter set. An unreadable or corrupt file yields an empty mapping instead
// of an error; the phrase dictionary is non-critical data.
func (r *FilePhraseRepository) Load(ctx context.Context) (PhraseBook, error) {
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		book := SeedPhrases()
		if err := r.Save(ctx, book); err != nil {
			return nil, fmt.Errorf("save seed phrases > %w", err)
		}
		return book, nil
	}

	contents, err := os.ReadFile(r.path)
	if err != nil {
		slog.Default().Warn("phrase store unreadable, starting empty",
			"path", r.path,
			"error", err,
		)
		return PhraseBook{}, nil
	}

	var book PhraseBook
	if err := json.Unmarshal(contents, &book); err != nil {
		slog.Default().Warn("phrase store corrupt, starting empty",
			"path", r.path,
			"error", err,
		)
		return PhraseBook{}, nil
	}
	return book, nil
}

// Save atomically rewrites the durable copy: the mapping is written to a
// temporary file in the same directory and renamed over the old one.
func (r *FilePhraseRepository) Save(ctx context.Context, book PhraseBook) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}

	file, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp > %w", err)
	}
	defer func() {
		_ = os.Remove(file.Name())
	}()

	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(book); err != nil {
		_ = file.Close()
		return fmt.Errorf("json.NewEncoder().Encode() > %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close > %w", err)
	}

	if err := os.Rename(file.Name(), r.path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", r.path, err)
	}
	return nil
}

// AddOrUpdate stores one pair and persists the full mapping before returning.
func (r *FilePhraseRepository) AddOrUpdate(ctx context.Context, book PhraseBook, localPhrase, standardPhrase string) error {
	book.Add(localPhrase, standardPhrase)
	if err := r.Save(ctx, book); err != nil {
		return fmt.Errorf("repository.Save > %w", err)
	}
	return nil
}
