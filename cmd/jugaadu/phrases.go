package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newPhrasesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "phrases",
		Short: "List the phrases known to the local phrasebook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
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

			bold := color.New(color.Bold)
			for _, entry := range book.Entries() {
				_, _ = bold.Printf("%s", entry.LocalPhrase)
				fmt.Printf(" = %s\n", entry.StandardPhrase)
			}
			fmt.Printf("\n%d phrases\n", len(book))
			return nil
		},
	}
}
