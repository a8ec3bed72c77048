// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session token and cached user
// go to the session store (OS keychain or state file).
//
// Values resolve in three layers: built-in defaults, the config file, then
// BEPPOFIT_* environment variables, which always win.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"beppofit/cli/internal/xdg"
)

// Store backend names accepted in SessionStore.
const (
	StoreKeychain = "keychain"
	StoreFile     = "file"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	// APIBaseURL is the identity backend origin, e.g. "https://api.beppofit.app".
	APIBaseURL string `json:"api_base_url" env:"BEPPOFIT_API_URL"`
	// RequestTimeout bounds every single backend exchange.
	RequestTimeout time.Duration `json:"request_timeout" env:"BEPPOFIT_REQUEST_TIMEOUT"`
	// SessionStore selects where the session is persisted: "keychain" or "file".
	SessionStore string `json:"session_store" env:"BEPPOFIT_SESSION_STORE"`
	LogLevel     string `json:"log_level" env:"BEPPOFIT_LOG_LEVEL"`
}

// defaults returns the built-in configuration.
func defaults() Config {
	return Config{
		APIBaseURL:     "https://api.beppofit.app",
		RequestTimeout: 10 * time.Second,
		SessionStore:   StoreKeychain,
		LogLevel:       "info",
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file returns defaults. Environment
// variables override both defaults and file contents.
func Load() (Config, error) {
	c := defaults()
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &c); err != nil {
			return c, err
		}
	}
	if err := env.Parse(&c); err != nil {
		return c, err
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
