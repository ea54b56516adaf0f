package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "odootoor.yaml")
	writeConfig(t, path, "tps: 60\n")

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	writeConfig(t, path, "tps: 30\ntext:\n  message: \"Reloaded\"\n")

	select {
	case cfg := <-w.Changes():
		assert.Equal(t, 30, cfg.TPS)
		assert.Equal(t, "Reloaded", cfg.Text.Message)
	case <-time.After(5 * time.Second):
		t.Fatal("no config delivered after write")
	}

	require.NoError(t, w.Close())
}

func TestWatcher_DropsInvalidConfig(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "odootoor.yaml")
	writeConfig(t, path, "tps: 60\n")

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond
	w.Start(context.Background())

	writeConfig(t, path, "tps: 0\n")

	select {
	case cfg := <-w.Changes():
		t.Fatalf("invalid config delivered: %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, w.Close())
}

func TestWatcher_CloseWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "odootoor.yaml")
	writeConfig(t, path, "tps: 60\n")

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
