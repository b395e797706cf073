package storage

import (
	"context"
	"io"
	"time"
)

// Package storage abstracts where document artifacts live. Keys are flat
// filenames of the form "{id}.{ext}" or "{id}_modified.{ext}"; backends must
// never reuse a key for different content because document IDs are never
// reallocated.

// ObjectInfo contains basic information about a stored artifact.
type ObjectInfo struct {
	Name         string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Storage is the artifact store interface. A missing object is reported as
// an error satisfying errors.Is(err, fs.ErrNotExist) on all backends.
type Storage interface {
	// Put writes an object under the given name from the provided reader.
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, name string) (io.ReadCloser, ObjectInfo, error)
	// Stat returns object info without reading the content.
	Stat(ctx context.Context, name string) (ObjectInfo, error)
	// Delete removes an object by name.
	Delete(ctx context.Context, name string) error
}
