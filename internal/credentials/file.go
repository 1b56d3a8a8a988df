package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/zhaomaota/word-stone/internal/domain"
)

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9_-]`)

// FileStore keeps one JSON file per user in a directory
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore creates the directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("failed to create credentials dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(username string) (string, error) {
	name := unsafeFileChars.ReplaceAllString(normalizeUsername(username), "_")
	if name == "" {
		return "", fmt.Errorf("%w: empty username", domain.ErrInvalidInput)
	}
	return filepath.Join(s.dir, name+fileExt), nil
}

// Get reads the stored credentials of a user
func (s *FileStore) Get(_ context.Context, username string) (Credentials, error) {
	p, err := s.path(username)
	if err != nil {
		return Credentials{}, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(p)
	s.mu.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return Credentials{}, ErrNotFound
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		slog.Default().Warn(LogMsgCorruptRecord, "username", username, "error", err)
		return Credentials{}, ErrNotFound
	}
	return creds, nil
}

// Put writes the credentials atomically with owner-only permissions
func (s *FileStore) Put(_ context.Context, username string, creds Credentials) error {
	p, err := s.path(username)
	if err != nil {
		return err
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	slog.Default().Debug(LogMsgStored, "username", username, "backend", "file")
	return nil
}

// Delete removes the stored credentials. Deleting a missing record is not an error.
func (s *FileStore) Delete(_ context.Context, username string) error {
	p, err := s.path(username)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	slog.Default().Debug(LogMsgDeleted, "username", username, "backend", "file")
	return nil
}

// Close is a no-op for the file store
func (s *FileStore) Close() error {
	return nil
}
