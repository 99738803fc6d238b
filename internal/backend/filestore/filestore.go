// Package filestore implements storage.Storage with one file per key.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"agenda/internal/storage"
)

const (
	// fileExt is appended to every escaped key.
	fileExt = ".json"

	dirMode  = 0700
	fileMode = 0600
)

// Store keeps each key in its own file under Dir.
type Store struct {
	dir string
	log *zap.Logger
}

// New creates a file store rooted at dir, creating the directory if needed.
func New(dir string, log *zap.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("filestore: data directory is empty")
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path used for key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileExt)
}

// Load implements storage.Storage.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Save implements storage.Storage.
// The value is written to a temp file in the same directory and renamed
// over the destination, so readers see either the old or the new value.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.Path(key)

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", key, err)
	}

	s.log.Debug("saved key", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}
