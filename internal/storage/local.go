package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// localStorage implements Storage on the local filesystem: one file per
// artifact directly under dir. This is the default backend and matches the
// documented persisted-state layout.
type localStorage struct {
	dir string
}

// NewLocal creates a filesystem-backed store rooted at dir, creating the
// directory if needed.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &localStorage{dir: dir}, nil
}

// path resolves a name inside the root, rejecting traversal attempts.
func (l *localStorage) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return filepath.Join(l.dir, name), nil
}

func (l *localStorage) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (ObjectInfo, error) {
	p, err := l.path(name)
	if err != nil {
		return ObjectInfo{}, err
	}
	f, err := os.Create(p)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create %s: %w", name, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(p)
		return ObjectInfo{}, fmt.Errorf("write %s: %w", name, err)
	}
	st, err := os.Stat(p)
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Name:         name,
		Size:         n,
		ContentType:  contentType,
		LastModified: st.ModTime(),
	}, nil
}

func (l *localStorage) Get(ctx context.Context, name string) (io.ReadCloser, ObjectInfo, error) {
	p, err := l.path(name)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	info := ObjectInfo{
		Name:         name,
		Size:         st.Size(),
		LastModified: st.ModTime(),
	}
	return f, info, nil
}

func (l *localStorage) Stat(ctx context.Context, name string) (ObjectInfo, error) {
	p, err := l.path(name)
	if err != nil {
		return ObjectInfo{}, err
	}
	st, err := os.Stat(p)
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Name:         name,
		Size:         st.Size(),
		LastModified: st.ModTime(),
	}, nil
}

func (l *localStorage) Delete(ctx context.Context, name string) error {
	p, err := l.path(name)
	if err != nil {
		return err
	}
	return os.Remove(p)
}
