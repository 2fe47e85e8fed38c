package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	gstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS stores files as objects under a prefix in a Cloud Storage bucket.
// Used to retain generated documents beyond the lifetime of the server
// filesystem.
type GCS struct {
	client *gstorage.Client
	bucket string
	prefix string
}

// NewGCS connects to Cloud Storage. credentialsFile may be empty, in which
// case application default credentials are used.
func NewGCS(ctx context.Context, bucket, prefix, credentialsFile string) (*GCS, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket, prefix: prefix}, nil
}

func (g *GCS) object(name string) *gstorage.ObjectHandle {
	return g.client.Bucket(g.bucket).Object(path.Join(g.prefix, path.Base(name)))
}

func (g *GCS) Save(ctx context.Context, name string, r io.Reader) error {
	w := g.object(name).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("write GCS object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close GCS object writer: %w", err)
	}
	return nil
}

func (g *GCS) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := g.object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gstorage.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open GCS object reader: %w", err)
	}
	return r, nil
}

func (g *GCS) Remove(ctx context.Context, name string) error {
	err := g.object(name).Delete(ctx)
	if err != nil && !errors.Is(err, gstorage.ErrObjectNotExist) {
		return fmt.Errorf("delete GCS object: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (g *GCS) Close() error {
	return g.client.Close()
}
