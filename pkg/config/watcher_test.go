package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchConfigEmitsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := WatchConfig(ctx, path)

	// Let the watcher register before mutating the file
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"log_level":"debug"}`), 0644))

	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("no reload notification after file change")
	}
}

func TestWatchConfigStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	ch := WatchConfig(ctx, path)
	cancel()

	select {
	case _, ok := <-ch:
		require.False(t, ok, "channel should be closed after cancel")
	case <-time.After(3 * time.Second):
		t.Fatal("channel not closed after context cancel")
	}
}
