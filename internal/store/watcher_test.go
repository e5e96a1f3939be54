package store

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
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"trustview/internal/logging"
)

func TestWatcherSignalsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "trustflow.db")
	require.NoError(t, os.WriteFile(path, []byte("seed"), 0644))

	w, err := NewWatcher(path, 30*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path+"-wal", []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("changed"), 0644))

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change signal")
	}
	require.Greater(t, w.EventCount(), 0)
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "trustflow.db")

	w, err := NewWatcher(path, 30*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	select {
	case <-w.Changes():
		t.Fatal("unrelated file must not trigger a refresh")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherStopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(filepath.Join(t.TempDir(), "x.db"), 0)
	require.NoError(t, err)
	w.Stop()
}

func TestWatcherStartWarnsForMissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	core, logs := observer.New(zapcore.WarnLevel)
	logging.SetLogger(zap.New(core))
	t.Cleanup(func() { logging.SetLogger(nil) })

	path := filepath.Join(t.TempDir(), "gone", "trustflow.db")
	w, err := NewWatcher(path, 0)
	require.NoError(t, err)
	defer w.Stop()

	require.Error(t, w.Start(context.Background()))

	entries := logs.FilterLoggerName("store").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "cannot watch")
}
