package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/jugaadu/internal/datasync"
)

func newSyncCommand() *cobra.Command {
	var showRemote bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Merge phrases from the remote ledger into the local phrasebook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ledgerClient := newLedgerClient(cfg)
			if ledgerClient == nil {
				return fmt.Errorf("remote ledger is not configured: set ledger.spreadsheet_id and the SHEETS_API_TOKEN environment variable")
			}

			if showRemote {
				rows, err := ledgerClient.FetchRows(ctx)
				if err != nil {
					return fmt.Errorf("ledgerClient.FetchRows > %w", err)
				}
				for _, row := range rows {
					fmt.Printf("  %q = %q (%s, %s)\n", row.LocalPhrase, row.StandardPhrase, row.Timestamp, row.Location)
				}
				fmt.Printf("\n%d phrases in the remote ledger\n", len(rows))
				return nil
			}

			repo, closeRepo, err := newRepository(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeRepo() }()

			book, err := repo.Load(ctx)
			if err != nil {
				return fmt.Errorf("repo.Load > %w", err)
			}

			reconciler := datasync.NewReconciler(ledgerClient, repo, os.Stdout)
			result, err := reconciler.PullMerge(ctx, book)
			if err != nil {
				return fmt.Errorf("reconciler.PullMerge > %w", err)
			}

			fmt.Println("\nSync Summary:")
			fmt.Printf("  Phrases: %d new, %d already known\n", result.Added, result.Skipped)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showRemote, "show-remote", false, "List the remote ledger rows without merging")
	return cmd
}
