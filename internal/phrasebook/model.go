// Package phrasebook holds the bidirectional phrase mapping and its persistence.
package phrasebook

import (
	"sort"
	"strings"
)

// PhraseBook maps a normalized local phrase to its standard-language equivalent.
// Keys are trimmed and lowercased; values keep their original casing.
type PhraseBook map[string]string

// Direction selects which way a lookup translates.
type Direction string

const (
	DirectionLocalToStandard Direction = "local-to-standard"
	DirectionStandardToLocal Direction = "standard-to-local"
)

// Not-found sentinels. A lookup miss is a defined result, not an error.
const (
	NotFoundLocalToStandard = "Sorry, I don't know that one yet! You can add it in the 'Contribute' mode."
	NotFoundStandardToLocal = "Sorry, no local equivalent found. Feel free to contribute one!"
)

// NormalizeKey trims and lowercases a phrase for use as a lookup key.
func NormalizeKey(phrase string) string {
	return strings.ToLower(strings.TrimSpace(phrase))
}

// Add normalizes and stores a phrase pair, overwriting any existing entry.
func (book PhraseBook) Add(localPhrase, standardPhrase string) {
	book[NormalizeKey(localPhrase)] = strings.TrimSpace(standardPhrase)
}

// Contains reports whether the normalized local phrase is already known.
func (book PhraseBook) Contains(localPhrase string) bool {
	_, ok := book[NormalizeKey(localPhrase)]
	return ok
}

// Lookup resolves a phrase in the given direction and reports whether it matched.
// Matching is exact on normalized text; no fuzzy or partial matching.
func (book PhraseBook) Lookup(direction Direction, text string) (string, bool) {
	query := NormalizeKey(text)
	if direction == DirectionStandardToLocal {
		result, ok := book.reverseIndex()[query]
		return result, ok
	}
	result, ok := book[query]
	return result, ok
}

// Translate resolves a phrase and substitutes the direction-specific
// not-found sentinel on a miss.
func (book PhraseBook) Translate(direction Direction, text string) string {
	result, ok := book.Lookup(direction, text)
	if ok {
		return result
	}
	if direction == DirectionStandardToLocal {
		return NotFoundStandardToLocal
	}
	return NotFoundLocalToStandard
}

// reverseIndex derives the standard-to-local view from the forward mapping.
// When two values normalize to the same string the index keeps one of them;
// the projection is lossy and the forward mapping stays the source of truth.
func (book PhraseBook) reverseIndex() map[string]string {
	index := make(map[string]string, len(book))
	for localPhrase, standardPhrase := range book {
		index[strings.ToLower(standardPhrase)] = localPhrase
	}
	return index
}

// Entry is a single phrase pair for listings.
type Entry struct {
	LocalPhrase    string
	StandardPhrase string
}

// Entries returns all pairs sorted by local phrase.
func (book PhraseBook) Entries() []Entry {
	entries := make([]Entry, 0, len(book))
	for localPhrase, standardPhrase := range book {
		entries = append(entries, Entry{LocalPhrase: localPhrase, StandardPhrase: standardPhrase})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LocalPhrase < entries[j].LocalPhrase
	})
	return entries
}
