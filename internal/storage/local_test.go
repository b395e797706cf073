package storage

import (
	"context"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	t.Run("put and get roundtrip", func(t *testing.T) {
		info, err := store.Put(ctx, "doc.txt", strings.NewReader("hello world"), 11, "text/plain")
		require.NoError(t, err)
		assert.Equal(t, int64(11), info.Size)

		rc, got, err := store.Get(ctx, "doc.txt")
		require.NoError(t, err)
		defer rc.Close()

		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(body))
		assert.Equal(t, int64(11), got.Size)
	})

	t.Run("stat existing", func(t *testing.T) {
		info, err := store.Stat(ctx, "doc.txt")
		require.NoError(t, err)
		assert.Equal(t, "doc.txt", info.Name)
	})

	t.Run("missing object maps to fs.ErrNotExist", func(t *testing.T) {
		_, err := store.Stat(ctx, "nope.pdf")
		assert.ErrorIs(t, err, fs.ErrNotExist)

		_, _, err = store.Get(ctx, "nope.pdf")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("delete", func(t *testing.T) {
		_, err := store.Put(ctx, "gone.txt", strings.NewReader("x"), 1, "text/plain")
		require.NoError(t, err)
		require.NoError(t, store.Delete(ctx, "gone.txt"))

		_, err = store.Stat(ctx, "gone.txt")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		_, err := store.Put(ctx, "../evil.txt", strings.NewReader("x"), 1, "")
		assert.Error(t, err)

		_, _, err = store.Get(ctx, "a/b.txt")
		assert.Error(t, err)
	})
}
