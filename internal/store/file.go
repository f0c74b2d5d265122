package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/seenimoa/vndrate/pkg/models"
)

// DefaultPath is the cache file location, relative to the working directory.
const DefaultPath = "./exchange_rate.json"

// FileStore keeps the record in a JSON file.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore creates a store backed by the OS filesystem.
func NewFileStore(path string) *FileStore {
	return NewFileStoreFs(afero.NewOsFs(), path)
}

// NewFileStoreFs creates a store on an arbitrary afero filesystem.
func NewFileStoreFs(fsys afero.Fs, path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{fs: fsys, path: path}
}

// Path returns the cache file path.
func (s *FileStore) Path() string { return s.path }

// Read loads the record. A missing file is not an error.
func (s *FileStore) Read(_ context.Context) (*models.CachedRate, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	rec, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return rec, nil
}

// Write replaces the file contents with rec.
// The document goes to a temp file first and is renamed over the old one.
func (s *FileStore) Write(_ context.Context, rec models.CachedRate) error {
	data, err := encode(rec)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".exchange_rate-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
