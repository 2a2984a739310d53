package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"slices"

	"github.com/at-ishikawa/jugaadu/internal/config"
	"github.com/at-ishikawa/jugaadu/internal/database"
	"github.com/at-ishikawa/jugaadu/internal/datasync"
	"github.com/at-ishikawa/jugaadu/internal/ledger"
	"github.com/at-ishikawa/jugaadu/internal/ledger/sheets"
	"github.com/at-ishikawa/jugaadu/internal/phrasebook"
	"github.com/at-ishikawa/jugaadu/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	repo, closeRepo, err := newRepository(cfg)
	if err != nil {
		return fmt.Errorf("newRepository() > %w", err)
	}
	defer func() { _ = closeRepo() }()

	var reconciler *datasync.Reconciler
	if cfg.Ledger.SpreadsheetID != "" && cfg.Ledger.Token != "" {
		ledgerClient := sheets.NewClient(
			cfg.Ledger.BaseURL,
			cfg.Ledger.Token,
			cfg.Ledger.SpreadsheetID,
			cfg.Ledger.SheetName,
			ledger.DefaultMaxRetryAttempts,
		)
		defer func() { _ = ledgerClient.Close() }()
		reconciler = datasync.NewReconciler(ledgerClient, repo, os.Stdout)
	}

	handler, err := server.NewTranslatorHandler(context.Background(), repo, reconciler)
	if err != nil {
		return fmt.Errorf("server.NewTranslatorHandler() > %w", err)
	}

	mux := http.NewServeMux()
	handler.Register(mux)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	return http.ListenAndServe(addr, corsMiddleware(cfg.Server.CORS.AllowedOrigins, mux))
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("JUGAADU_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func newRepository(cfg *config.Config) (phrasebook.PhraseRepository, func() error, error) {
	switch cfg.Store.Driver {
	case "mysql":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open > %w", err)
		}
		return phrasebook.NewDBPhraseRepository(db), db.Close, nil
	default:
		return phrasebook.NewFilePhraseRepository(cfg.Store.File), func() error { return nil }, nil
	}
}

func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if slices.Contains(allowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
