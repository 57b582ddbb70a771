// Package config loads client settings from an optional YAML file and
// PATENTAI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "PATENTAI"

const (
	DefaultBaseURL            = "http://localhost:8000"
	DefaultTimeout            = 30 * time.Second
	DefaultAnalysisDelay      = 1200 * time.Millisecond
	DefaultTypewriterInterval = 15 * time.Millisecond
)

// Config is the full client configuration.
type Config struct {
	API APIConfig `mapstructure:"api" yaml:"api"`
	UI  UIConfig  `mapstructure:"ui" yaml:"ui"`
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// APIConfig points at the patent search service.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// UIConfig tunes terminal behaviour.
type UIConfig struct {
	AnalysisDelay      time.Duration  `mapstructure:"analysis_delay" yaml:"analysis_delay"`
	TypewriterInterval *time.Duration `mapstructure:"typewriter_interval" yaml:"typewriter_interval"`
	AltScreen          *bool          `mapstructure:"alt_screen" yaml:"alt_screen"`
}

// LogConfig controls the zap logger. An empty level keeps logging silent.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// RevealInterval is the effective typewriter pace. An explicit zero turns the
// animation off.
func (u UIConfig) RevealInterval() time.Duration {
	if u.TypewriterInterval == nil {
		return DefaultTypewriterInterval
	}
	return *u.TypewriterInterval
}

// UseAltScreen reports the effective alternate screen setting.
func (u UIConfig) UseAltScreen() bool {
	return u.AltScreen == nil || *u.AltScreen
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{
		"api.base_url", "api.timeout",
		"ui.analysis_delay", "ui.typewriter_interval", "ui.alt_screen",
		"log.level", "log.file",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

// Load reads path when it is non-empty, applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields. A zero duration counts as unset, except for
// the typewriter interval where only a missing value does.
func ApplyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultTimeout
	}
	if cfg.UI.AnalysisDelay == 0 {
		cfg.UI.AnalysisDelay = DefaultAnalysisDelay
	}
	if cfg.UI.TypewriterInterval == nil {
		interval := DefaultTypewriterInterval
		cfg.UI.TypewriterInterval = &interval
	}
	if cfg.UI.AltScreen == nil {
		enabled := true
		cfg.UI.AltScreen = &enabled
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
}

// Validate checks the configuration for values the client cannot use.
func (c *Config) Validate() error {
	var errs []error
	parsed, err := url.Parse(c.API.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("api.base_url: %w", err))
	case parsed.Scheme != "http" && parsed.Scheme != "https":
		errs = append(errs, fmt.Errorf("api.base_url: unsupported scheme %q", parsed.Scheme))
	case parsed.Host == "":
		errs = append(errs, errors.New("api.base_url: missing host"))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, errors.New("api.timeout must not be negative"))
	}
	if c.UI.AnalysisDelay < 0 {
		errs = append(errs, errors.New("ui.analysis_delay must not be negative"))
	}
	if c.UI.RevealInterval() < 0 {
		errs = append(errs, errors.New("ui.typewriter_interval must not be negative"))
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

// WriteDefault writes the default configuration as YAML to path, refusing to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("config: encode defaults: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
