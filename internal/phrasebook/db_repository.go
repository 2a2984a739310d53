package phrasebook

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DBPhraseRepository implements PhraseRepository using MySQL.
type DBPhraseRepository struct {
	db *sqlx.DB
}

// NewDBPhraseRepository creates a new DBPhraseRepository.
func NewDBPhraseRepository(db *sqlx.DB) *DBPhraseRepository {
	return &DBPhraseRepository{db: db}
}

type phraseRow struct {
	LocalPhrase    string `db:"local_phrase"`
	StandardPhrase string `db:"standard_phrase"`
}

// Load returns all phrase pairs. An empty table seeds and persists the
// starter set, mirroring the file repository's first-run behavior.
func (r *DBPhraseRepository) Load(ctx context.Context) (PhraseBook, error) {
	var rows []phraseRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT local_phrase, standard_phrase FROM phrases ORDER BY local_phrase"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(phrases) > %w", err)
	}

	if len(rows) == 0 {
		book := SeedPhrases()
		if err := r.Save(ctx, book); err != nil {
			return nil, fmt.Errorf("save seed phrases > %w", err)
		}
		return book, nil
	}

	book := make(PhraseBook, len(rows))
	for _, row := range rows {
		book[row.LocalPhrase] = row.StandardPhrase
	}
	return book, nil
}

// Save rewrites the phrases table in full within a transaction.
func (r *DBPhraseRepository) Save(ctx context.Context, book PhraseBook) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM phrases"); err != nil {
		return fmt.Errorf("tx.ExecContext(delete phrases) > %w", err)
	}

	entries := book.Entries()
	const batchSize = 100
	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		batch := entries[i:end]

		query := "INSERT INTO phrases (local_phrase, standard_phrase) VALUES "
		args := make([]interface{}, 0, len(batch)*2)
		for j, entry := range batch {
			if j > 0 {
				query += ", "
			}
			query += "(?, ?)"
			args = append(args, entry.LocalPhrase, entry.StandardPhrase)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("tx.ExecContext(batch insert phrases) > %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// AddOrUpdate upserts one normalized pair and mirrors it into the in-memory
// mapping.
func (r *DBPhraseRepository) AddOrUpdate(ctx context.Context, book PhraseBook, localPhrase, standardPhrase string) error {
	book.Add(localPhrase, standardPhrase)
	key := NormalizeKey(localPhrase)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO phrases (local_phrase, standard_phrase)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE standard_phrase = VALUES(standard_phrase)`,
		key, book[key])
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert phrase) > %w", err)
	}
	return nil
}
