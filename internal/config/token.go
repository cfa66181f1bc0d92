package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenFileName is the dot-file in the user's home directory holding the
// bearer token.
const TokenFileName = ".periodo-token"

// ErrNoToken indicates that no token has been saved yet.
var ErrNoToken = errors.New("no token saved")

// TokenStore abstracts bearer-token persistence so commands can be tested
// with an in-memory fake.
type TokenStore interface {
	// Load returns the saved token, or ErrNoToken if none exists.
	Load() (string, error)
	// Save persists the token for later invocations.
	Save(token string) error
	// Clear removes the saved token. Clearing an empty store is not an error.
	Clear() error
}

// DefaultTokenPath returns the token file path in the user's home directory.
func DefaultTokenPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, TokenFileName)
}

// FileTokenStore persists the token as the literal contents of a single file.
type FileTokenStore struct {
	Path string
}

// NewFileTokenStore creates a file-backed token store at the given path.
// An empty path falls back to DefaultTokenPath.
func NewFileTokenStore(path string) *FileTokenStore {
	if path == "" {
		path = DefaultTokenPath()
	}
	return &FileTokenStore{Path: path}
}

// Load reads the token file, trimming surrounding whitespace.
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", err
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Save writes the token with owner-only permissions.
func (s *FileTokenStore) Save(token string) error {
	return os.WriteFile(s.Path, []byte(token), 0600)
}

// Clear removes the token file if present.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryTokenStore is an in-memory TokenStore for tests.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// Load returns the stored token, or ErrNoToken.
func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

// Save stores the token.
func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the stored token.
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
