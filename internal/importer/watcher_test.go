package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "urls.csv")
	w := NewWatcher(target, nil)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to target", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"create target", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"chmod target", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"remove target", fsnotify.Event{Name: target, Op: fsnotify.Remove}, false},
		{"write to sibling", fsnotify.Event{Name: filepath.Join(dir, "other.csv"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "urls.csv")
	require.NoError(t, os.WriteFile(target, []byte("url,title,h1\n"), 0644))

	reloaded := make(chan string, 4)
	w := NewWatcher(target, func(ctx context.Context, path string) error {
		reloaded <- path
		return nil
	})
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(target, []byte("url,title,h1\nhttps://a,A,H\n"), 0644)
	}()

	select {
	case path := <-reloaded:
		assert.Equal(t, w.path, path)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for reload")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher("/non/existent/dir/urls.csv", func(context.Context, string) error { return nil })
	assert.Error(t, w.Run(context.Background()))
}
