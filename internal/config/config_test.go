package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patentai.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, DefaultAnalysisDelay, cfg.UI.AnalysisDelay)
	assert.Equal(t, DefaultTypewriterInterval, cfg.UI.RevealInterval())
	assert.True(t, cfg.UI.UseAltScreen())
	assert.Empty(t, cfg.Log.Level)
}

func TestLoadReadsYAML(t *testing.T) {
	path := createTempConfigFile(t, `
api:
  base_url: "https://patents.example.com"
  timeout: 5s
ui:
  analysis_delay: 300ms
  typewriter_interval: 2ms
  alt_screen: false
log:
  level: DEBUG
  file: /tmp/patentai.log
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://patents.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.AnalysisDelay)
	assert.Equal(t, 2*time.Millisecond, cfg.UI.RevealInterval())
	assert.False(t, cfg.UI.UseAltScreen())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/patentai.log", cfg.Log.File)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := createTempConfigFile(t, "api:\n  base_url: \"http://file.example.com\"\n")
	t.Setenv("PATENTAI_API_BASE_URL", "http://env.example.com:9000")
	t.Setenv("PATENTAI_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example.com:9000", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadKeepsExplicitZeroTypewriterInterval(t *testing.T) {
	path := createTempConfigFile(t, "ui:\n  typewriter_interval: 0s\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.UI.TypewriterInterval)
	assert.Zero(t, cfg.UI.RevealInterval())

	t.Setenv("PATENTAI_UI_TYPEWRITER_INTERVAL", "0")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Zero(t, cfg.UI.RevealInterval())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://x" }, "unsupported scheme"},
		{"no host", func(c *Config) { c.API.BaseURL = "http://" }, "missing host"},
		{"negative delay", func(c *Config) { c.UI.AnalysisDelay = -time.Second }, "ui.analysis_delay"},
		{"negative typewriter", func(c *Config) { negative := -time.Millisecond; c.UI.TypewriterInterval = &negative }, "ui.typewriter_interval"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "unknown level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteDefaultRoundTripsThroughLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "patentai.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = WriteDefault(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
