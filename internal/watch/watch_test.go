package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHead(t *testing.T, gitDir, content string) {
	t.Helper()
	lock := filepath.Join(gitDir, "HEAD.lock")
	require.NoError(t, os.WriteFile(lock, []byte(content+"\n"), 0o644))
	require.NoError(t, os.Rename(lock, filepath.Join(gitDir, "HEAD")))
}

func receive(t *testing.T, heads <-chan string) string {
	t.Helper()
	select {
	case head, ok := <-heads:
		require.True(t, ok, "channel closed early")
		return head
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for HEAD change")
		return ""
	}
}

func TestHeadWatcher(t *testing.T) {
	t.Parallel()

	gitDir := t.TempDir()
	writeHead(t, gitDir, "ref: refs/heads/main")

	w, err := New(gitDir)
	require.NoError(t, err)
	defer w.Close()
	w.SetPollInterval(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	heads, err := w.Watch(ctx)
	require.NoError(t, err)

	assert.Equal(t, "ref: refs/heads/main", receive(t, heads))

	writeHead(t, gitDir, "ref: refs/heads/PROJ-42-login")
	assert.Equal(t, "ref: refs/heads/PROJ-42-login", receive(t, heads))

	writeHead(t, gitDir, "4b825dc642cb6eb9a060e54bf8d69288fbee4904")
	assert.Equal(t, "4b825dc642cb6eb9a060e54bf8d69288fbee4904", receive(t, heads))

	cancel()
	select {
	case _, ok := <-heads:
		assert.False(t, ok, "channel must close after cancel")
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestHeadWatcherIgnoresUnchangedWrites(t *testing.T) {
	t.Parallel()

	gitDir := t.TempDir()
	writeHead(t, gitDir, "ref: refs/heads/main")

	w, err := New(gitDir)
	require.NoError(t, err)
	defer w.Close()
	w.SetPollInterval(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	heads, err := w.Watch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/main", receive(t, heads))

	writeHead(t, gitDir, "ref: refs/heads/main")
	select {
	case head := <-heads:
		t.Fatalf("unexpected HEAD event %q", head)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingDir(t *testing.T) {
	t.Parallel()

	w, err := New(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Watch(context.Background())
	require.Error(t, err)
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	w, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
