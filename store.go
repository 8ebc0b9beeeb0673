package goaltrack

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is the persistence collaborator. Writes must be durable before an
// operation is considered committed.
type Store interface {
	// Load reads the persisted book. A store with no prior state returns
	// an empty book, not an error.
	Load() (*Book, error)
	// Save durably writes the whole book.
	Save(*Book) error
}

// FileStore persists the book as a single JSON document on disk, in the
// backup format. It is the authoritative source of truth.
type FileStore struct {
	Path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the book from disk. A missing file yields an empty book.
func (s *FileStore) Load() (*Book, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open book file %q: %w", s.Path, err)
	}
	defer f.Close()

	b, err := Import(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode book file %q: %w", s.Path, err)
	}
	return b, nil
}

// Save writes the book to a temporary file and renames it into place, so
// a failed write never leaves a corrupt book behind.
func (s *FileStore) Save(b *Book) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("could not create directory for book %q: %w", s.Path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), filepath.Base(s.Path)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary book file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Export(tmp, b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temporary book file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("could not write book file %q: %w", s.Path, err)
	}
	return nil
}
