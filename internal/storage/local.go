package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores files as plain files inside a single directory.
type Local struct {
	dir string
}

// NewLocal creates the directory if needed and returns a store backed by it.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("NewLocal: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Path returns the absolute-ish path of a named file inside the store.
// Useful when a consumer needs to hand the file to a library that only
// accepts paths.
func (l *Local) Path(name string) string {
	return filepath.Join(l.dir, filepath.Base(name))
}

func (l *Local) Save(_ context.Context, name string, r io.Reader) error {
	dst := l.Path(name)

	tmp, err := os.CreateTemp(l.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("Save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("Save: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("Save: %w", err)
	}
	return nil
}

func (l *Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(l.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("Open: %w", err)
	}
	return f, nil
}

func (l *Local) Remove(_ context.Context, name string) error {
	err := os.Remove(l.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("Remove: %w", err)
	}
	return nil
}
