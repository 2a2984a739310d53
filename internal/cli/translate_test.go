package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_speech "github.com/at-ishikawa/jugaadu/internal/mocks/speech"
	"github.com/at-ishikawa/jugaadu/internal/phrasebook"
)

func newTestTranslatorCLI(input string, output *bytes.Buffer) *TranslatorCLI {
	book := phrasebook.PhraseBook{}
	book.Add("kaisa hai?", "How are you?")
	book.Add("oye!", "Hey!")

	return &TranslatorCLI{
		book:         book,
		stdinReader:  bufio.NewReader(strings.NewReader(input)),
		stdoutWriter: output,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

func TestTranslateCLI_Session(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOutput []string
		wantEnd    bool
	}{
		{
			name:  "forward translation",
			input: "1\nkaisa hai?\n",
			wantOutput: []string{
				"Translation:",
				"How are you?",
			},
		},
		{
			name:  "reverse translation",
			input: "2\nHow are you?\n",
			wantOutput: []string{
				"Translation:",
				"kaisa hai?",
			},
		},
		{
			name:  "empty direction defaults to forward",
			input: "\noye!\n",
			wantOutput: []string{
				"Hey!",
			},
		},
		{
			name:  "miss shows the sentinel",
			input: "1\nunknown phrase\n",
			wantOutput: []string{
				phrasebook.NotFoundLocalToStandard,
			},
		},
		{
			name:  "reverse miss shows the sentinel",
			input: "2\nunknown phrase\n",
			wantOutput: []string{
				phrasebook.NotFoundStandardToLocal,
			},
		},
		{
			name:  "unknown direction",
			input: "3\n",
			wantOutput: []string{
				`Unknown direction "3"`,
			},
		},
		{
			name:  "empty phrase",
			input: "1\n\n",
			wantOutput: []string{
				"Please enter a phrase to translate.",
			},
		},
		{
			name:    "quit ends the session",
			input:   "quit\n",
			wantEnd: true,
			wantOutput: []string{
				"Translation session ended.",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			translateCLI := &TranslateCLI{
				TranslatorCLI: newTestTranslatorCLI(tt.input, &output),
			}

			err := translateCLI.Session(context.Background())
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

func TestTranslateCLI_Session_VoiceInput(t *testing.T) {
	audioFile := filepath.Join(t.TempDir(), "query.wav")
	require.NoError(t, os.WriteFile(audioFile, []byte("fake wav bytes"), 0644))

	ctrl := gomock.NewController(t)
	transcriber := mock_speech.NewMockTranscriber(ctrl)
	transcriber.EXPECT().Transcribe(gomock.Any(), []byte("fake wav bytes")).Return("kaisa hai?", nil)

	var output bytes.Buffer
	translateCLI := &TranslateCLI{
		TranslatorCLI: newTestTranslatorCLI("1\nvoice "+audioFile+"\n", &output),
		transcriber:   transcriber,
	}

	require.NoError(t, translateCLI.Session(context.Background()))
	assert.Contains(t, output.String(), "Heard: kaisa hai?")
	assert.Contains(t, output.String(), "How are you?")
}

func TestTranslateCLI_Session_VoiceInputWithoutTranscriber(t *testing.T) {
	var output bytes.Buffer
	translateCLI := &TranslateCLI{
		TranslatorCLI: newTestTranslatorCLI("1\nvoice query.wav\n", &output),
	}

	require.NoError(t, translateCLI.Session(context.Background()))
	assert.Contains(t, output.String(), "Could not understand audio")
}
