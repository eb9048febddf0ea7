package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsMatchingChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Config{
		Dir:      dir,
		Debounce: 20 * time.Millisecond,
		Match:    func(name string) bool { return strings.HasSuffix(name, ".yaml") },
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, paths []string) error {
			batches <- paths
			return nil
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.0.0.yaml"), []byte("version: 1.0.0\n"), 0644))

	select {
	case paths := <-batches:
		assert.Equal(t, []string{filepath.Join(dir, "1.0.0.yaml")}, paths)
	case <-ctx.Done():
		t.Fatal("timed out waiting for change batch")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_CallbackErrorStops(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Config{Dir: dir, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context, []string) error {
			return assert.AnError
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("a"), 0644))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, assert.AnError)
	case <-ctx.Done():
		t.Fatal("timed out waiting for watcher to stop")
	}
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(Config{Dir: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}
