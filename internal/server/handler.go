// Package server provides the JSON API over the phrasebook.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/at-ishikawa/jugaadu/internal/datasync"
	"github.com/at-ishikawa/jugaadu/internal/phrasebook"
)

// TranslatorHandler serves lookup, contribution and sync requests.
// The mutex serializes every access to the mapping: the store has no
// concurrent-writer protocol, so the handler is its single owner.
type TranslatorHandler struct {
	repo       phrasebook.PhraseRepository
	reconciler *datasync.Reconciler

	mu   sync.Mutex
	book phrasebook.PhraseBook
}

// NewTranslatorHandler loads the phrasebook and creates the handler.
// reconciler may be nil; the sync endpoint then reports the ledger as
// unconfigured.
func NewTranslatorHandler(ctx context.Context, repo phrasebook.PhraseRepository, reconciler *datasync.Reconciler) (*TranslatorHandler, error) {
	book, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.Load > %w", err)
	}

	return &TranslatorHandler{
		repo:       repo,
		reconciler: reconciler,
		book:       book,
	}, nil
}

// Register mounts all routes on the mux.
func (h *TranslatorHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/phrases", h.handleListPhrases)
	mux.HandleFunc("POST /api/translate", h.handleTranslate)
	mux.HandleFunc("POST /api/contributions", h.handleContribute)
	mux.HandleFunc("POST /api/sync", h.handleSync)
}

type translateRequest struct {
	Direction string `json:"direction"`
	Text      string `json:"text"`
}

type translateResponse struct {
	Result string `json:"result"`
	Found  bool   `json:"found"`
}

type contributionRequest struct {
	LocalPhrase    string `json:"local_phrase"`
	StandardPhrase string `json:"standard_phrase"`
}

type phraseResponse struct {
	LocalPhrase    string `json:"local_phrase"`
	StandardPhrase string `json:"standard_phrase"`
}

type syncResponse struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *TranslatorHandler) handleListPhrases(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	entries := h.book.Entries()
	h.mu.Unlock()

	phrases := make([]phraseResponse, 0, len(entries))
	for _, entry := range entries {
		phrases = append(phrases, phraseResponse{
			LocalPhrase:    entry.LocalPhrase,
			StandardPhrase: entry.StandardPhrase,
		})
	}
	writeJSON(w, http.StatusOK, phrases)
}

func (h *TranslatorHandler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var request translateRequest
	if err := decodeJSON(r.Body, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if strings.TrimSpace(request.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return
	}

	direction, err := parseDirection(request.Direction)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	h.mu.Lock()
	result, found := h.book.Lookup(direction, request.Text)
	if !found {
		result = h.book.Translate(direction, request.Text)
	}
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, translateResponse{Result: result, Found: found})
}

func (h *TranslatorHandler) handleContribute(w http.ResponseWriter, r *http.Request) {
	var request contributionRequest
	if err := decodeJSON(r.Body, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if strings.TrimSpace(request.LocalPhrase) == "" || strings.TrimSpace(request.StandardPhrase) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "local_phrase and standard_phrase are required"})
		return
	}

	h.mu.Lock()
	err := h.repo.AddOrUpdate(r.Context(), h.book, request.LocalPhrase, request.StandardPhrase)
	h.mu.Unlock()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fmt.Sprintf("store contribution: %v", err)})
		return
	}

	// The local write is durable; a failed push is advisory only.
	if h.reconciler != nil {
		if err := h.reconciler.PushContribution(r.Context(), request.LocalPhrase, request.StandardPhrase, nil); err != nil {
			slog.Warn("Failed to push a contribution to the remote ledger", "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, phraseResponse{
		LocalPhrase:    phrasebook.NormalizeKey(request.LocalPhrase),
		StandardPhrase: strings.TrimSpace(request.StandardPhrase),
	})
}

func (h *TranslatorHandler) handleSync(w http.ResponseWriter, r *http.Request) {
	if h.reconciler == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "remote ledger is not configured"})
		return
	}

	h.mu.Lock()
	result, err := h.reconciler.PullMerge(r.Context(), h.book)
	h.mu.Unlock()
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: fmt.Sprintf("sync with remote ledger: %v", err)})
		return
	}

	writeJSON(w, http.StatusOK, syncResponse{Added: result.Added, Skipped: result.Skipped})
}

func parseDirection(direction string) (phrasebook.Direction, error) {
	switch phrasebook.Direction(direction) {
	case phrasebook.DirectionLocalToStandard, "":
		return phrasebook.DirectionLocalToStandard, nil
	case phrasebook.DirectionStandardToLocal:
		return phrasebook.DirectionStandardToLocal, nil
	default:
		return "", fmt.Errorf("unknown direction %q", direction)
	}
}

func decodeJSON(body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(v)
}
