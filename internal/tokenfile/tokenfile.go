// Package tokenfile persists the CLI's backend access token between runs.
package tokenfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/prepdeck/prepdeck-web/internal/backend"
)

// FileName is the token file inside the CLI home directory.
const FileName = "token"

type record struct {
	AccessToken string `json:"access_token"`
}

// Store reads and writes one token file.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a Store rooted at dir. The directory is created on first save.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// Path returns the token file location.
func (s *Store) Path() string { return s.path }

// Load returns the stored token; a missing file yields "".
func (s *Store) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return "", fmt.Errorf("decode token file: %w", err)
	}
	return rec.AccessToken, nil
}

// Save replaces the stored token. An empty token removes the file.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove token file: %w", err)
		}
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	b, err := json.Marshal(record{AccessToken: token})
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, FileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(b); err != nil {
		return errors.Join(fmt.Errorf("write token file: %w", err), f.Close(), os.Remove(tmp))
	}
	if err := f.Close(); err != nil {
		return errors.Join(fmt.Errorf("close token file: %w", err), os.Remove(tmp))
	}
	if err := os.Chmod(tmp, 0o600); err != nil {
		return errors.Join(fmt.Errorf("chmod token file: %w", err), os.Remove(tmp))
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Join(fmt.Errorf("replace token file: %w", err), os.Remove(tmp))
	}
	return nil
}

// Session loads the token into a MemorySession that writes every change
// back to the file, so a backend 401 also clears the stored token.
func (s *Store) Session(logger *slog.Logger) (*backend.MemorySession, error) {
	if logger == nil {
		logger = slog.Default()
	}
	token, err := s.Load()
	if err != nil {
		return nil, err
	}
	sess := backend.NewMemorySession(token)
	sess.OnChange = func(token string) {
		if err := s.Save(token); err != nil {
			logger.Warn("failed to persist token", "path", s.path, "error", err)
		}
	}
	return sess, nil
}
