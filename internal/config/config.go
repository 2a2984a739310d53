package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Store         StoreConfig         `mapstructure:"store"`
	Logs          LogsConfig          `mapstructure:"logs"`
	Audio         AudioConfig         `mapstructure:"audio"`
	Ledger        LedgerConfig        `mapstructure:"ledger"`
	OpenAI        OpenAIConfig        `mapstructure:"openai"`
	Geolocation   GeolocationConfig   `mapstructure:"geolocation"`
	Contributions ContributionsConfig `mapstructure:"contributions"`
	Sync          SyncConfig          `mapstructure:"sync"`
	Database      DatabaseConfig      `mapstructure:"database"`
}

// StoreConfig selects where the phrase mapping is persisted.
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=file mysql"`
	File   string `mapstructure:"file"`
}

type LogsConfig struct {
	ContributionsFile string `mapstructure:"contributions_file"`
	TranslationsFile  string `mapstructure:"translations_file"`
}

type AudioConfig struct {
	ContributionsDirectory string `mapstructure:"contributions_directory"`
	TranslationsDirectory  string `mapstructure:"translations_directory"`
}

type LedgerConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	SpreadsheetID string `mapstructure:"spreadsheet_id"`
	SheetName     string `mapstructure:"sheet_name"`
	Token         string `mapstructure:"token"`
}

type OpenAIConfig struct {
	APIKey          string `mapstructure:"api_key"`
	Model           string `mapstructure:"model"`
	TranscribeModel string `mapstructure:"transcribe_model"`
	SpeechModel     string `mapstructure:"speech_model"`
	Voice           string `mapstructure:"voice"`
}

type GeolocationConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

type ContributionsConfig struct {
	SummaryPolicy string `mapstructure:"summary_policy" validate:"oneof=block placeholder"`
}

type SyncConfig struct {
	OnStartup bool `mapstructure:"on_startup"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/jugaadu")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("store.driver", "file")
	v.SetDefault("store.file", "phrases_db.json")
	v.SetDefault("logs.contributions_file", filepath.Join("logs", "contributions.yml"))
	v.SetDefault("logs.translations_file", filepath.Join("logs", "translations.yml"))
	v.SetDefault("audio.contributions_directory", filepath.Join("audio", "contributions"))
	v.SetDefault("audio.translations_directory", filepath.Join("audio", "translations"))
	v.SetDefault("ledger.base_url", "https://sheets.googleapis.com/v4/spreadsheets")
	v.SetDefault("ledger.sheet_name", "Jugaadu_Translator_Phrases")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.transcribe_model", "whisper-1")
	v.SetDefault("openai.speech_model", "tts-1")
	v.SetDefault("openai.voice", "alloy")
	v.SetDefault("geolocation.enabled", false)
	v.SetDefault("geolocation.endpoint", "http://ip-api.com/json")
	v.SetDefault("contributions.summary_policy", "block")
	v.SetDefault("sync.on_startup", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "jugaadu")
	v.SetDefault("database.username", "user")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})

	// Bind ledger token to environment variable only (not from config file)
	if err := v.BindEnv("ledger.token", "SHEETS_API_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind SHEETS_API_TOKEN environment variable: %w", err)
	}

	// Bind OpenAI config to environment variables only (not from config file)
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
