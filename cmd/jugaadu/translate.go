package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/jugaadu/internal/activitylog"
	"github.com/at-ishikawa/jugaadu/internal/audio"
	"github.com/at-ishikawa/jugaadu/internal/cli"
	"github.com/at-ishikawa/jugaadu/internal/inference"
	inferenceopenai "github.com/at-ishikawa/jugaadu/internal/inference/openai"
	"github.com/at-ishikawa/jugaadu/internal/speech"
	speechopenai "github.com/at-ishikawa/jugaadu/internal/speech/openai"
)

func newTranslateCommand() *cobra.Command {
	var speak bool

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Start an interactive translation session",
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

			var transcriber speech.Transcriber
			var synthesizer speech.Synthesizer
			var activityLogger *activitylog.Logger
			if cfg.OpenAI.APIKey != "" {
				speechClient := speechopenai.NewClient(
					cfg.OpenAI.APIKey,
					cfg.OpenAI.TranscribeModel,
					cfg.OpenAI.SpeechModel,
					cfg.OpenAI.Voice,
					speech.DefaultMaxRetryAttempts,
				)
				defer func() { _ = speechClient.Close() }()
				transcriber = speechClient
				synthesizer = speechClient

				summarizer := inferenceopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
				defer func() { _ = summarizer.Close() }()
				activityLogger = activitylog.NewLogger(
					summarizer,
					audio.NewStore(cfg.Audio.TranslationsDirectory),
					cfg.Logs.TranslationsFile,
				)
			}

			translateCLI, err := cli.NewTranslateCLI(
				ctx,
				repo,
				newReconciler(cfg, repo, os.Stdout),
				newLocator(cfg),
				transcriber,
				synthesizer,
				audio.NewStore(cfg.Audio.TranslationsDirectory),
				activityLogger,
				cfg.Sync.OnStartup,
				speak,
			)
			if err != nil {
				return fmt.Errorf("cli.NewTranslateCLI > %w", err)
			}
			return translateCLI.Run(ctx, translateCLI)
		},
	}
	cmd.Flags().BoolVar(&speak, "speak", false, "Speak translations out loud via text-to-speech")
	return cmd
}
