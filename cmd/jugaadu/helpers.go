package main

import (
	"fmt"
	"io"

	"github.com/at-ishikawa/jugaadu/internal/config"
	"github.com/at-ishikawa/jugaadu/internal/database"
	"github.com/at-ishikawa/jugaadu/internal/datasync"
	"github.com/at-ishikawa/jugaadu/internal/geo"
	"github.com/at-ishikawa/jugaadu/internal/geo/ipapi"
	"github.com/at-ishikawa/jugaadu/internal/ledger"
	"github.com/at-ishikawa/jugaadu/internal/ledger/sheets"
	"github.com/at-ishikawa/jugaadu/internal/phrasebook"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newRepository builds the configured phrase store backend. The returned
// closer is a no-op for the file backend.
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

// newLedgerClient returns nil when the remote ledger is not configured.
func newLedgerClient(cfg *config.Config) ledger.Client {
	if cfg.Ledger.SpreadsheetID == "" || cfg.Ledger.Token == "" {
		return nil
	}
	return sheets.NewClient(
		cfg.Ledger.BaseURL,
		cfg.Ledger.Token,
		cfg.Ledger.SpreadsheetID,
		cfg.Ledger.SheetName,
		ledger.DefaultMaxRetryAttempts,
	)
}

// newReconciler returns nil when the remote ledger is not configured.
func newReconciler(cfg *config.Config, repo phrasebook.PhraseRepository, writer io.Writer) *datasync.Reconciler {
	ledgerClient := newLedgerClient(cfg)
	if ledgerClient == nil {
		return nil
	}
	return datasync.NewReconciler(ledgerClient, repo, writer)
}

// newLocator returns nil when location sharing is disabled.
func newLocator(cfg *config.Config) geo.Locator {
	if !cfg.Geolocation.Enabled {
		return nil
	}
	return ipapi.NewClient(cfg.Geolocation.Endpoint)
}
