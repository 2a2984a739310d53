package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_phrasebook "github.com/at-ishikawa/jugaadu/internal/mocks/phrasebook"
)

func TestContributeCLI_Session(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		setup      func(repo *mock_phrasebook.MockPhraseRepository)
		wantOutput []string
		wantEnd    bool
	}{
		{
			name:  "contribution is stored",
			input: "jugaad\nA creative workaround.\n",
			setup: func(repo *mock_phrasebook.MockPhraseRepository) {
				repo.EXPECT().AddOrUpdate(gomock.Any(), gomock.Any(), "jugaad", "A creative workaround.").Return(nil)
			},
			wantOutput: []string{
				`Thank you! "jugaad" has been added to the translator.`,
			},
		},
		{
			name:  "both fields are required before anything is stored",
			input: "jugaad\n\n",
			setup: func(repo *mock_phrasebook.MockPhraseRepository) {},
			wantOutput: []string{
				"Please fill in both fields before submitting.",
			},
		},
		{
			name:  "empty local phrase",
			input: "\nA creative workaround.\n",
			setup: func(repo *mock_phrasebook.MockPhraseRepository) {},
			wantOutput: []string{
				"Please fill in both fields before submitting.",
			},
		},
		{
			name:    "quit ends the session",
			input:   "quit\n",
			setup:   func(repo *mock_phrasebook.MockPhraseRepository) {},
			wantEnd: true,
			wantOutput: []string{
				"Contribution session ended.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_phrasebook.NewMockPhraseRepository(ctrl)
			tt.setup(repo)

			var output bytes.Buffer
			baseCLI := newTestTranslatorCLI(tt.input, &output)
			baseCLI.repo = repo
			contributeCLI := &ContributeCLI{TranslatorCLI: baseCLI}

			err := contributeCLI.Session(context.Background())
			if tt.wantEnd {
				require.True(t, errors.Is(err, errEnd))
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.wantOutput {
				assert.Contains(t, output.String(), want)
			}
		})
	}
}

func TestContributeCLI_Session_VoiceWithoutPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_phrasebook.NewMockPhraseRepository(ctrl)

	var output bytes.Buffer
	baseCLI := newTestTranslatorCLI("voice query.wav\n", &output)
	baseCLI.repo = repo
	contributeCLI := &ContributeCLI{TranslatorCLI: baseCLI}

	require.NoError(t, contributeCLI.Session(context.Background()))
	assert.Contains(t, output.String(), "voice contributions require a configured speech-to-text service")
}
