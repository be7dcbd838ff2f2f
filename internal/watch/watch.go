// Package watch reports changes of a repository's HEAD so the derived commit
// message can be refreshed when the user switches branches.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is how often HEAD is re-read in case an event was missed.
const DefaultPollInterval = 500 * time.Millisecond

// HeadWatcher streams the content of <git-dir>/HEAD whenever it changes.
// It uses fsnotify on the git directory because git replaces HEAD by renaming
// HEAD.lock over it.
type HeadWatcher struct {
	gitDir   string
	headPath string
	interval time.Duration
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	closed   bool
}

// New creates a HeadWatcher for the git directory gitDir.
func New(gitDir string) (*HeadWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &HeadWatcher{
		gitDir:   gitDir,
		headPath: filepath.Join(gitDir, "HEAD"),
		interval: DefaultPollInterval,
		watcher:  watcher,
	}, nil
}

// SetPollInterval changes the fallback polling interval. Call before Watch.
func (w *HeadWatcher) SetPollInterval(d time.Duration) {
	if d > 0 {
		w.interval = d
	}
}

// Watch emits the current HEAD content (e.g. "ref: refs/heads/main" or a
// commit hash) immediately and then on every change. The channel is closed
// when ctx is cancelled or Close is called.
func (w *HeadWatcher) Watch(ctx context.Context) (<-chan string, error) {
	if err := w.watcher.Add(w.gitDir); err != nil {
		return nil, fmt.Errorf("watching %s: %w", w.gitDir, err)
	}

	heads := make(chan string, 1)
	go w.loop(ctx, heads)
	return heads, nil
}

func (w *HeadWatcher) loop(ctx context.Context, heads chan<- string) {
	defer close(heads)

	last := ""
	check := func() bool {
		head, err := w.readHead()
		if err != nil || head == last {
			return true
		}
		last = head
		select {
		case heads <- head:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !check() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.headPath {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename) {
				if !check() {
					return
				}
			}
		case <-ticker.C:
			if !check() {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watch] debug: watcher error: %v", err)
		}
	}
}

func (w *HeadWatcher) readHead() (string, error) {
	data, err := os.ReadFile(w.headPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Close stops the watcher and releases resources.
func (w *HeadWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}
