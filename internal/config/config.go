// Package config handles configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	apperrors "github.com/inboxpilot-ai/inboxpilot/internal/errors"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Models: ModelConfig{
			Endpoint:          "https://models.internal.example.com",
			PrimaryModel:      "anthropic.claude-3-sonnet-20240229-v1:0",
			FallbackModel:     "anthropic.claude-3-haiku-20240307-v1:0",
			MaxRetries:        3,
			RetryDelaySeconds: 1,
			MaxTokens:         4000,
			Temperature:       0.1,
			RequestTimeout:    90 * time.Second,
		},
		Server: ServerConfig{
			Port:            "8080",
			Mode:            "release",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Path: "inboxpilot.db",
		},
		Notify: NotifyConfig{
			FromName:    "Client Support",
			FromAddress: "support@example.com",
		},
		Voice: VoiceConfig{
			MinConfidence: 0.5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads the configuration from the given TOML path.
// A missing file is not an error: defaults plus environment overrides apply.
func Load(configPath string) (*Config, error) {
	// .env is optional; it only seeds the environment.
	_ = godotenv.Load()

	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err == nil {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, apperrors.Wrap(err, apperrors.CodeConfigInvalid,
					fmt.Sprintf("failed to parse config %s", configPath), apperrors.CategoryPermanent)
			}
		} else if !os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.CodeConfigInvalid,
				fmt.Sprintf("failed to read config %s", configPath), apperrors.CategoryPermanent)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overlays environment variables onto the config.
func applyEnv(cfg *Config) {
	cfg.Models.Endpoint = getEnv("MODEL_ENDPOINT", cfg.Models.Endpoint)
	cfg.Models.APIToken = getEnv("MODEL_API_TOKEN", cfg.Models.APIToken)
	cfg.Models.PrimaryModel = getEnv("MODEL_PRIMARY", cfg.Models.PrimaryModel)
	cfg.Models.FallbackModel = getEnv("MODEL_FALLBACK", cfg.Models.FallbackModel)
	cfg.Models.MaxRetries = getEnvInt("MODEL_MAX_RETRIES", cfg.Models.MaxRetries)
	cfg.Models.RetryDelaySeconds = getEnvInt("MODEL_RETRY_DELAY", cfg.Models.RetryDelaySeconds)

	cfg.Server.Port = getEnv("SERVER_PORT", cfg.Server.Port)
	cfg.Server.Mode = getEnv("GIN_MODE", cfg.Server.Mode)

	cfg.Store.Path = getEnv("AUDIT_DB_PATH", cfg.Store.Path)

	cfg.Notify.APIKey = getEnv("SENDGRID_API_KEY", cfg.Notify.APIKey)
	cfg.Notify.FromName = getEnv("EMAIL_FROM_NAME", cfg.Notify.FromName)
	cfg.Notify.FromAddress = getEnv("EMAIL_FROM_ADDRESS", cfg.Notify.FromAddress)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Models.MaxRetries < 1 {
		return apperrors.New(apperrors.CodeConfigInvalid,
			"models.max_retries must be at least 1", apperrors.CategoryPermanent)
	}
	if c.Models.RetryDelaySeconds < 0 {
		return apperrors.New(apperrors.CodeConfigInvalid,
			"models.retry_delay_seconds must not be negative", apperrors.CategoryPermanent)
	}
	if c.Models.PrimaryModel == "" {
		return apperrors.New(apperrors.CodeConfigInvalid,
			"models.primary_model must be set", apperrors.CategoryPermanent)
	}
	if c.Voice.MinConfidence < 0 || c.Voice.MinConfidence > 1 {
		return apperrors.New(apperrors.CodeConfigInvalid,
			"voice.min_confidence must be within [0,1]", apperrors.CategoryPermanent)
	}
	return nil
}

// Save writes the configuration to the given path as TOML.
func (c *Config) Save(configPath string) error {
	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
