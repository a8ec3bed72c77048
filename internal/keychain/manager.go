// Package keychain provides centralized, thread-safe keychain operations for beppofit.
// This module manages all interactions with the OS keychain/credential store,
// providing a unified interface for storing and retrieving the bearer token and
// the cached user record that make up the persisted session.
//
// The package supports macOS Keychain, Windows Credential Manager, and the
// freedesktop Secret Service on Linux, with thread-safe operations and proper
// error handling.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	ring    keyring.Keyring
	backend keychainBackend
}

// keychainBackend defines the interface for keychain operations.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// ErrNotFound is returned when a requested entry does not exist in the keychain.
var ErrNotFound = errors.New("keychain entry not found")

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "beppofit"

// Keys used for storing session entries in the OS keychain.
const (
	KeyAuthToken = "auth_token"
	KeyAuthUser  = "auth_user"
)

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	// Try native security backend first on macOS
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{backend: backend}, nil
		}
		// Fall through to keyring library if security command fails
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}

	return &Manager{
		ring: ring,
	}, nil
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		globalManager = nil
		return nil, globalError
	}

	return globalManager, nil
}

// openRing opens the OS keyring using native platform backends only.
func openRing() (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		// Try macOS Keychain first, then pass (password store) as fallback.
		// Pass requires the 'pass' utility installed.
		allowedBackends = []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.PassBackend,
		}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		allowedBackends = []keyring.BackendType{keyring.SecretServiceBackend}
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends,
		PassPrefix:      ServiceName,
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, errors.New("OS keychain unavailable; set session_store to \"file\" in the beppofit config to use file-based session storage")
	}

	return ring, nil
}

// SaveSession stores the bearer token and the serialized user record in the
// OS keychain. The user entry is written before the token so a concurrent
// reader never observes a token without its cached user.
// This method is thread-safe.
func (m *Manager) SaveSession(token string, userJSON []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		if len(userJSON) > 0 {
			if err := m.backend.Set(KeyAuthUser, string(userJSON)); err != nil {
				return err
			}
		} else {
			_ = m.backend.Delete(KeyAuthUser)
		}
		return m.backend.Set(KeyAuthToken, token)
	}

	if len(userJSON) > 0 {
		if err := m.ring.Set(keyring.Item{Key: KeyAuthUser, Data: userJSON}); err != nil {
			return err
		}
	} else {
		_ = m.ring.Remove(KeyAuthUser)
	}
	return m.ring.Set(keyring.Item{Key: KeyAuthToken, Data: []byte(token)})
}

// LoadToken retrieves the bearer token from the keychain.
// Returns ErrNotFound when no token is stored.
// This method is thread-safe.
func (m *Manager) LoadToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.backend != nil {
		token, err := m.backend.Get(KeyAuthToken)
		if err != nil {
			return "", ErrNotFound
		}
		if token == "" {
			return "", ErrNotFound
		}
		return token, nil
	}

	it, err := m.ring.Get(KeyAuthToken)
	if err != nil {
		return "", ErrNotFound
	}
	if len(it.Data) == 0 {
		return "", ErrNotFound
	}
	return string(it.Data), nil
}

// LoadUser retrieves the serialized cached user record from the keychain.
// Returns ErrNotFound when no user record is stored.
// This method is thread-safe.
func (m *Manager) LoadUser() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.backend != nil {
		data, err := m.backend.Get(KeyAuthUser)
		if err != nil || data == "" {
			return nil, ErrNotFound
		}
		return []byte(data), nil
	}

	it, err := m.ring.Get(KeyAuthUser)
	if err != nil || len(it.Data) == 0 {
		return nil, ErrNotFound
	}
	return it.Data, nil
}

// ClearSession removes both session entries from the keychain.
// This method is thread-safe.
func (m *Manager) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		_ = m.backend.Delete(KeyAuthToken)
		_ = m.backend.Delete(KeyAuthUser)
		return nil
	}

	_ = m.ring.Remove(KeyAuthToken)
	_ = m.ring.Remove(KeyAuthUser)
	return nil
}
