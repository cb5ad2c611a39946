// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// EleKnowledge terminal client.
//
// Supports TOML configuration with sensible defaults, environment
// variable overrides, and validation.
//
// Configuration file location:
//   - ~/.eleknowledge/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete client configuration.
type Config struct {
	// Version of the config schema, for future migrations.
	Version string `toml:"version"`

	// API endpoint configuration
	API APIConfig `toml:"api"`

	// Auth configuration
	Auth AuthConfig `toml:"auth"`

	// Cache configuration
	Cache CacheConfig `toml:"cache"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// APIConfig contains the backend endpoint configuration.
type APIConfig struct {
	// RagURL is the base URL of the RAG query API
	RagURL string `toml:"rag_url"`
	// ChatURL is the base URL of the chat-management API (sessions,
	// messages, feedback)
	ChatURL string `toml:"chat_url"`
	// AuthURL is the base URL of the identity API
	AuthURL string `toml:"auth_url"`
	// TimeoutSecs is the per-request timeout in seconds.
	// Query submission runs a full retrieval + generation pass
	// server-side, so this defaults high (120s).
	TimeoutSecs int `toml:"timeout_secs"`
}

// AuthConfig contains authentication configuration.
type AuthConfig struct {
	// Bypass skips the identity provider and runs with a fixed local
	// user. Honored only in non-production builds; release builds
	// ignore it regardless of config or environment.
	Bypass bool `toml:"bypass"`
	// BypassUserID is the user identity assumed when Bypass is active
	BypassUserID string `toml:"bypass_user_id"`
}

// CacheConfig contains the local read-through cache configuration.
type CacheConfig struct {
	// Enabled toggles the local session/history cache
	Enabled bool `toml:"enabled"`
	// Path is the cache database path (empty = ~/.eleknowledge/cache.db)
	Path string `toml:"path"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the color theme: "dark", "light", or "auto"
	Theme string `toml:"theme"`
	// ShowSources renders source-document panels under assistant
	// messages
	ShowSources bool `toml:"show_sources"`
	// SidebarWidth is the session sidebar width in columns
	SidebarWidth int `toml:"sidebar_width"`
}

// =============================================================================
// BUILD PROFILE
// =============================================================================

// buildProfile is stamped at build time:
//
//	go build -ldflags "-X .../internal/config.buildProfile=release"
//
// Anything other than "release" counts as a development build.
var buildProfile = "dev"

// IsProduction reports whether this is a release build. The auth bypass
// is inert in release builds.
func IsProduction() bool {
	return buildProfile == "release"
}

// BypassEnabled reports whether the auth bypass is active, combining the
// config flag, the environment override, and the build profile.
func (c *Config) BypassEnabled() bool {
	return c.Auth.Bypass && !IsProduction()
}

// =============================================================================
// DEFAULTS AND PATHS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			TimeoutSecs: 120,
		},
		Auth: AuthConfig{
			Bypass:       false,
			BypassUserID: "local-dev",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		UI: UIConfig{
			Theme:        "auto",
			ShowSources:  true,
			SidebarWidth: 32,
		},
	}
}

// ConfigDir returns the configuration directory (~/.eleknowledge).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".eleknowledge"), nil
}

// ConfigPath returns the TOML config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CachePath returns the cache database path, honoring the configured
// override.
func (c *Config) CachePath() (string, error) {
	if c.Cache.Path != "" {
		return c.Cache.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.db"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load loads configuration from the default location.
// Falls back to defaults when no file exists. Environment overrides are
// applied last, then the result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Used by --config.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the default location.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies ELEKNOWLEDGE_* environment variables on top
// of the loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ELEKNOWLEDGE_RAG_API_URL"); v != "" {
		c.API.RagURL = v
	}
	if v := os.Getenv("ELEKNOWLEDGE_CHAT_API_URL"); v != "" {
		c.API.ChatURL = v
	}
	if v := os.Getenv("ELEKNOWLEDGE_AUTH_URL"); v != "" {
		c.API.AuthURL = v
	}
	if v := os.Getenv("ELEKNOWLEDGE_AUTH_BYPASS"); v != "" {
		c.Auth.Bypass = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("ELEKNOWLEDGE_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// SetDefaults fills zero values that must never stay zero.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = 120
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "auto"
	}
	if c.UI.SidebarWidth == 0 {
		c.UI.SidebarWidth = 32
	}
	if c.Auth.BypassUserID == "" {
		c.Auth.BypassUserID = "local-dev"
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	for _, ep := range []struct {
		field string
		value string
	}{
		{"api.rag_url", c.API.RagURL},
		{"api.chat_url", c.API.ChatURL},
		{"api.auth_url", c.API.AuthURL},
	} {
		if ep.value == "" {
			continue
		}
		u, err := url.Parse(ep.value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   ep.field,
				Message: fmt.Sprintf("invalid URL '%s', must be http(s)", ep.value),
			})
		}
	}

	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: fmt.Sprintf("timeout %d out of range 1-600", c.API.TimeoutSecs),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if c.UI.SidebarWidth < 16 || c.UI.SidebarWidth > 80 {
		errs = append(errs, ValidationError{
			Field:   "ui.sidebar_width",
			Message: fmt.Sprintf("sidebar width %d out of range 16-80", c.UI.SidebarWidth),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
