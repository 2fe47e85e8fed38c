// Package storage abstracts where job files live: a local directory by
// default, or a GCS bucket for retained output documents.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the named file does not exist in the store.
var ErrNotFound = errors.New("file not found")

// Store holds named files for one concern (uploads or generated outputs).
// Names are always bare filenames; implementations must reject or
// sanitize anything resembling a path.
type Store interface {
	// Save persists the content under name, replacing any previous file.
	// No partial file is left behind on failure.
	Save(ctx context.Context, name string, r io.Reader) error

	// Open returns a reader for the named file, or ErrNotFound.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Remove deletes the named file. Removing a missing file is not an error.
	Remove(ctx context.Context, name string) error
}
