package file_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/htmlsaver/pkg/file"
)

func TestNewLocalStorage(t *testing.T) {
	t.Parallel()

	t.Run("empty base dir", func(t *testing.T) {
		t.Parallel()

		_, err := file.NewLocalStorage("")
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})

	t.Run("creates base dir", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "base")
		storage, err := file.NewLocalStorage(dir)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.True(t, filepath.IsAbs(storage.BaseDir()))
	})
}

func TestLocalStorage_Put(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage, err := file.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	t.Run("writes nested key", func(t *testing.T) {
		t.Parallel()

		content := []byte("<p>hello</p>")
		require.NoError(t, storage.Put(ctx, "snapshots/v1/home.html", content, "text/html"))

		path := filepath.Join(storage.BaseDir(), "snapshots", "v1", "home.html")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, data)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

		got, err := storage.Get(ctx, "snapshots/v1/home.html")
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.True(t, storage.Exists(ctx, "snapshots/v1/home.html"))
	})

	t.Run("overwrites existing document", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, storage.Put(ctx, "over.html", []byte("old"), "text/html"))
		require.NoError(t, storage.Put(ctx, "over.html", []byte("new"), "text/html"))

		got, err := storage.Get(ctx, "over.html")
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, storage.Put(ctx, "tmpcheck/a.html", []byte("a"), ""))

		entries, err := os.ReadDir(filepath.Join(storage.BaseDir(), "tmpcheck"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.html", entries[0].Name())
	})

	t.Run("rejects invalid keys", func(t *testing.T) {
		t.Parallel()

		for _, key := range []string{"", "  ", "../escape.html", "a/../../escape.html", "."} {
			err := storage.Put(ctx, key, []byte("x"), "text/html")
			assert.ErrorIs(t, err, file.ErrInvalidPath, "key %q", key)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := storage.Put(cctx, "cancelled.html", []byte("x"), "text/html")
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, storage.Exists(ctx, "cancelled.html"))
	})

	t.Run("concurrent writers", func(t *testing.T) {
		t.Parallel()

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, storage.Put(ctx, "shared.html", []byte("<p>same</p>"), "text/html"))
			}()
		}
		wg.Wait()

		got, err := storage.Get(ctx, "shared.html")
		require.NoError(t, err)
		assert.Equal(t, "<p>same</p>", string(got))
	})
}

func TestLocalStorage_WriteTimeout(t *testing.T) {
	t.Parallel()

	storage, err := file.NewLocalStorage(t.TempDir(), file.WithLocalWriteTimeout(time.Second))
	require.NoError(t, err)
	assert.NoError(t, storage.Put(context.Background(), "fast.html", []byte("x"), "text/html"))
}

func TestLocalStorage_GetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	storage, err := file.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Get(ctx, "missing.html")
	assert.ErrorIs(t, err, file.ErrFileNotFound)
	assert.ErrorIs(t, storage.Delete(ctx, "missing.html"), file.ErrFileNotFound)

	require.NoError(t, storage.Put(ctx, "doc.html", []byte("x"), "text/html"))
	require.NoError(t, storage.Delete(ctx, "doc.html"))
	assert.False(t, storage.Exists(ctx, "doc.html"))

	assert.False(t, storage.Exists(ctx, "../outside"))
	_, err = storage.Get(ctx, "../outside")
	assert.ErrorIs(t, err, file.ErrInvalidPath)
}
