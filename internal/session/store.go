package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"beppofit/cli/internal/logging"
)

// Store is the persistence contract for the current session. Implementations
// keep the token and the cached user durable across process restarts, scoped
// to the local device. No network or validation logic lives here.
//
// Save writes both values as one record: no reader of the store may observe a
// token without the user that was saved with it. Load returns whatever is
// persisted; a malformed cached user degrades to nil rather than failing the
// restore path. Clear removes both values and is a no-op on an empty store.
type Store interface {
	Save(token string, user *User) error
	Load() (token string, user *User, err error)
	Clear() error
}

// fileRecord is the on-disk shape of a persisted session.
type fileRecord struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user,omitempty"`
}

// FileStore persists the session as a single JSON file with 0600 permissions.
// Writes go through a temp file and rename, so readers see either the old or
// the new record, never a partial one.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "session.json")}
}

// Save writes token and user as one record.
func (f *FileStore) Save(token string, user *User) error {
	rec := fileRecord{Token: token}
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			return err
		}
		rec.User = b
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Load reads the persisted session. A missing file yields an empty session.
// A malformed record or malformed cached user is treated as absent.
func (f *FileStore) Load() (string, *User, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, nil
		}
		return "", nil, err
	}
	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		logging.Debug.Debug().Err(err).Msg("session file unreadable, treating as empty")
		return "", nil, nil
	}
	return rec.Token, decodeUser(rec.User), nil
}

// Clear removes the persisted session.
func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// decodeUser unmarshals a cached user record, degrading malformed JSON to nil.
func decodeUser(data []byte) *User {
	if len(data) == 0 {
		return nil
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		logging.Debug.Debug().Err(err).Msg("cached user unreadable, treating as absent")
		return nil
	}
	if u.ID == "" && u.Email == "" {
		return nil
	}
	return &u
}
