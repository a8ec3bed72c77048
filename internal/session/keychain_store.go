package session

import (
	"encoding/json"
	"errors"

	"beppofit/cli/internal/keychain"
)

// KeychainStore persists the session in the OS keychain via the shared
// keychain manager. The manager writes the user entry before the token entry
// under one lock, so no reader observes a token without its cached user.
type KeychainStore struct {
	km *keychain.Manager
}

// NewKeychainStore creates a keychain-backed store.
// It fails when no usable OS keychain backend is available.
func NewKeychainStore() (*KeychainStore, error) {
	km, err := keychain.GetManager()
	if err != nil {
		return nil, err
	}
	return &KeychainStore{km: km}, nil
}

// Save writes token and user as one record.
func (k *KeychainStore) Save(token string, user *User) error {
	var userJSON []byte
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return err
		}
		userJSON = b
	}
	return k.km.SaveSession(token, userJSON)
}

// Load reads the persisted session. Missing entries yield an empty session;
// a malformed cached user is treated as absent.
func (k *KeychainStore) Load() (string, *User, error) {
	token, err := k.km.LoadToken()
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return "", nil, nil
		}
		return "", nil, err
	}
	userJSON, err := k.km.LoadUser()
	if err != nil {
		// Token without user is a valid, recoverable state.
		return token, nil, nil
	}
	return token, decodeUser(userJSON), nil
}

// Clear removes both keychain entries.
func (k *KeychainStore) Clear() error {
	return k.km.ClearSession()
}
