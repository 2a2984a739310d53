package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		env      map[string]string
		assert   func(t *testing.T, cfg *Config)
		wantErr  string
	}{
		{
			name:     "defaults",
			contents: "",
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "file", cfg.Store.Driver)
				assert.Equal(t, "phrases_db.json", cfg.Store.File)
				assert.Equal(t, filepath.Join("logs", "contributions.yml"), cfg.Logs.ContributionsFile)
				assert.Equal(t, "https://sheets.googleapis.com/v4/spreadsheets", cfg.Ledger.BaseURL)
				assert.Equal(t, "Jugaadu_Translator_Phrases", cfg.Ledger.SheetName)
				assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
				assert.Equal(t, "whisper-1", cfg.OpenAI.TranscribeModel)
				assert.Equal(t, "tts-1", cfg.OpenAI.SpeechModel)
				assert.Equal(t, "alloy", cfg.OpenAI.Voice)
				assert.False(t, cfg.Geolocation.Enabled)
				assert.Equal(t, "http://ip-api.com/json", cfg.Geolocation.Endpoint)
				assert.Equal(t, "block", cfg.Contributions.SummaryPolicy)
				assert.False(t, cfg.Sync.OnStartup)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORS.AllowedOrigins)
			},
		},
		{
			name: "file values override defaults",
			contents: `store:
  driver: mysql
geolocation:
  enabled: true
contributions:
  summary_policy: placeholder
sync:
  on_startup: true
server:
  port: 9090
`,
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.Store.Driver)
				assert.True(t, cfg.Geolocation.Enabled)
				assert.Equal(t, "placeholder", cfg.Contributions.SummaryPolicy)
				assert.True(t, cfg.Sync.OnStartup)
				assert.Equal(t, 9090, cfg.Server.Port)
			},
		},
		{
			name:     "secrets come from the environment",
			contents: "",
			env: map[string]string{
				"SHEETS_API_TOKEN": "sheets-token",
				"OPENAI_API_KEY":   "openai-key",
				"OPENAI_MODEL":     "gpt-4o",
				"DB_PASSWORD":      "db-password",
			},
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "sheets-token", cfg.Ledger.Token)
				assert.Equal(t, "openai-key", cfg.OpenAI.APIKey)
				assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
				assert.Equal(t, "db-password", cfg.Database.Password)
			},
		},
		{
			name: "unknown store driver",
			contents: `store:
  driver: redis
`,
			wantErr: "invalid configuration",
		},
		{
			name: "unknown summary policy",
			contents: `contributions:
  summary_policy: ignore
`,
			wantErr: "invalid configuration",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			loader, err := NewConfigLoader(writeConfigFile(t, tt.contents))
			require.NoError(t, err)

			cfg, err := loader.Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.assert(t, cfg)
		})
	}
}
