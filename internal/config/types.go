// Package config provides configuration types for inboxpilot.
package config

import "time"

// Config represents the main configuration.
type Config struct {
	Models ModelConfig  `toml:"models"`
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Notify NotifyConfig `toml:"notify"`
	Voice  VoiceConfig  `toml:"voice"`
	Log    LogConfig    `toml:"log"`
}

// ModelConfig configures the model invocation layer.
type ModelConfig struct {
	// Endpoint is the base URL of the model gateway.
	Endpoint string `toml:"endpoint"`
	// APIToken authenticates against the gateway. Usually set via env.
	APIToken string `toml:"api_token"`
	// PrimaryModel and FallbackModel are tried in that order.
	PrimaryModel  string `toml:"primary_model"`
	FallbackModel string `toml:"fallback_model"`
	// MaxRetries is the attempt cap per tier.
	MaxRetries int `toml:"max_retries"`
	// RetryDelaySeconds is the base of the exponential backoff.
	RetryDelaySeconds int `toml:"retry_delay_seconds"`
	// MaxTokens and Temperature are passed through on every request.
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
	// RequestTimeout bounds a single attempt.
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// ServerConfig configures the HTTP entry point.
type ServerConfig struct {
	Port            string        `toml:"port"`
	Mode            string        `toml:"mode"` // debug, release
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	IdleTimeout     time.Duration `toml:"idle_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// StoreConfig configures audit persistence.
type StoreConfig struct {
	// Path is the SQLite database file. Empty disables persistence.
	Path string `toml:"path"`
}

// NotifyConfig configures outbound reply dispatch.
type NotifyConfig struct {
	// APIKey is the SendGrid key. Usually set via SENDGRID_API_KEY.
	APIKey      string `toml:"api_key"`
	FromName    string `toml:"from_name"`
	FromAddress string `toml:"from_address"`
}

// VoiceConfig configures voice edit handling.
type VoiceConfig struct {
	// MinConfidence rejects transcriptions below this score.
	MinConfidence float64 `toml:"min_confidence"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}
