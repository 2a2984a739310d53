package phrasebook

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=../mocks/phrasebook/mock_repository.go -package=mock_phrasebook

// PhraseRepository defines operations for persisting the phrase mapping.
type PhraseRepository interface {
	// Load returns the current mapping, seeding the starter set when no
	// durable copy exists yet.
	Load(ctx context.Context) (PhraseBook, error)
	// Save rewrites the durable copy in full with the given mapping.
	Save(ctx context.Context, book PhraseBook) error
	// AddOrUpdate stores one normalized pair in the mapping and persists it
	// immediately.
	AddOrUpdate(ctx context.Context, book PhraseBook, localPhrase, standardPhrase string) error
}

// seedPhrases is the built-in starter set persisted on first load.
var seedPhrases = PhraseBook{
	"kaisa hai?":             "How are you?",
	"sab theek hai":          "Everything is fine.",
	"tuition laga lo":        "Get a tutor / Start tuition classes.",
	"timepass kar raha hoon": "I'm just passing time.",
	"panga mat le":           "Don't mess with me.",
	"oye!":                   "Hey!",
	"chalega":                "It will work / That's acceptable.",
}

// SeedPhrases returns a copy of the built-in starter set.
func SeedPhrases() PhraseBook {
	book := make(PhraseBook, len(seedPhrases))
	for localPhrase, standardPhrase := range seedPhrases {
		book[localPhrase] = standardPhrase
	}
	return book
}
