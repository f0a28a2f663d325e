package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxpilot-ai/inboxpilot/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 3, cfg.Models.MaxRetries)
	assert.Equal(t, 1, cfg.Models.RetryDelaySeconds)
	assert.Equal(t, 4000, cfg.Models.MaxTokens)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "inboxpilot.db", cfg.Store.Path)
	assert.Equal(t, 0.5, cfg.Voice.MinConfidence)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Models.PrimaryModel, cfg.Models.PrimaryModel)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inboxpilot.toml")
	content := `
[models]
primary_model = "primary-from-file"
max_retries = 5

[server]
port = "9090"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "primary-from-file", cfg.Models.PrimaryModel)
	assert.Equal(t, 5, cfg.Models.MaxRetries)
	assert.Equal(t, "9090", cfg.Server.Port)
	// Untouched sections keep their defaults.
	assert.Equal(t, config.Default().Models.FallbackModel, cfg.Models.FallbackModel)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inboxpilot.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = \"9090\"\n"), 0o644))

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("MODEL_MAX_RETRIES", "2")
	t.Setenv("MODEL_API_TOKEN", "tok-123")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, 2, cfg.Models.MaxRetries)
	assert.Equal(t, "tok-123", cfg.Models.APIToken)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[models\nport="), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "zero retries",
			mutate:  func(c *config.Config) { c.Models.MaxRetries = 0 },
			wantErr: "max_retries",
		},
		{
			name:    "negative retry delay",
			mutate:  func(c *config.Config) { c.Models.RetryDelaySeconds = -1 },
			wantErr: "retry_delay_seconds",
		},
		{
			name:    "missing primary model",
			mutate:  func(c *config.Config) { c.Models.PrimaryModel = "" },
			wantErr: "primary_model",
		},
		{
			name:    "confidence out of range",
			mutate:  func(c *config.Config) { c.Voice.MinConfidence = 1.5 },
			wantErr: "min_confidence",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.toml")
	cfg := config.Default()
	cfg.Server.Port = "6060"
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "6060", loaded.Server.Port)
}
