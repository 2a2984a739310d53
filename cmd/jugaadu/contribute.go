package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/jugaadu/internal/audio"
	"github.com/at-ishikawa/jugaadu/internal/cli"
	"github.com/at-ishikawa/jugaadu/internal/contribution"
	"github.com/at-ishikawa/jugaadu/internal/inference"
	inferenceopenai "github.com/at-ishikawa/jugaadu/internal/inference/openai"
	"github.com/at-ishikawa/jugaadu/internal/speech"
	speechopenai "github.com/at-ishikawa/jugaadu/internal/speech/openai"
)

func newContributeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contribute",
		Short: "Start an interactive contribution session",
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

			locator := newLocator(cfg)

			var pipeline *contribution.Pipeline
			if cfg.OpenAI.APIKey != "" {
				speechClient := speechopenai.NewClient(
					cfg.OpenAI.APIKey,
					cfg.OpenAI.TranscribeModel,
					cfg.OpenAI.SpeechModel,
					cfg.OpenAI.Voice,
					speech.DefaultMaxRetryAttempts,
				)
				defer func() { _ = speechClient.Close() }()

				summarizer := inferenceopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
				defer func() { _ = summarizer.Close() }()

				pipeline = contribution.NewPipeline(
					speechClient,
					summarizer,
					locator,
					audio.NewStore(cfg.Audio.ContributionsDirectory),
					cfg.Logs.ContributionsFile,
					contribution.SummaryPolicy(cfg.Contributions.SummaryPolicy),
				)
			}

			contributeCLI, err := cli.NewContributeCLI(
				ctx,
				repo,
				newReconciler(cfg, repo, os.Stdout),
				locator,
				pipeline,
				cfg.Sync.OnStartup,
			)
			if err != nil {
				return fmt.Errorf("cli.NewContributeCLI > %w", err)
			}
			return contributeCLI.Run(ctx, contributeCLI)
		},
	}
}
