package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_InvalidatesOnExternalCreate(t *testing.T) {
	l := newTestLocal(t, Options{Watch: true, CacheTTL: time.Hour})
	require.NotNil(t, l.watcher, "watcher should start on linux/darwin")
	ctx := context.Background()
	root := l.CurrentDirectory()

	got, err := l.SearchFiles(ctx, "outside")
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, 1, l.Index().Len())

	// Written behind the Local's back.
	touch(t, filepath.Join(root, "outside.txt"))

	assert.Eventually(t, func() bool {
		got, err := l.SearchFiles(ctx, "outside")
		return err == nil && len(got) == 1
	}, 2*time.Second, 20*time.Millisecond)
	assert.GreaterOrEqual(t, l.watcher.Invalidations(), int64(1))
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	l := newTestLocal(t, Options{Watch: true, CacheTTL: time.Hour})
	ctx := context.Background()
	root := l.CurrentDirectory()
	before := l.watcher.WatchedDirs()

	require.NoError(t, os.Mkdir(filepath.Join(root, "newdir"), 0755))
	assert.Eventually(t, func() bool {
		return l.watcher.WatchedDirs() == before+1
	}, 2*time.Second, 20*time.Millisecond)

	// Prime the cache, then change something inside the new directory.
	_, err := l.SearchFiles(ctx, "nested")
	require.NoError(t, err)
	touch(t, filepath.Join(root, "newdir", "nested.md"))

	assert.Eventually(t, func() bool {
		got, err := l.SearchFiles(ctx, "nested")
		return err == nil && len(got) == 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_RewatchOnChdir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "c"), 0755))

	l := newTestLocal(t, Options{Root: root, Watch: true})
	assert.Equal(t, 4, l.watcher.WatchedDirs(), "root, a, a/b, c")

	require.NoError(t, l.SetCurrentDirectory("a"))
	assert.Equal(t, 2, l.watcher.WatchedDirs(), "a and a/b")
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	ix := NewIndex(time.Minute, true, nil)
	defer ix.Close()

	w, err := NewWatcher(ix)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), t.TempDir()))
	w.Stop()
	w.Stop()
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	ix := NewIndex(time.Minute, true, nil)
	defer ix.Close()

	w, err := NewWatcher(ix)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, t.TempDir()))
	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher loop did not exit on cancel")
	}
	w.Stop()
}
