package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/borkshop/corridor/internal/level"
)

const box = `
name: box
spawn: {x: 50, y: 50}
walls:
  - {from: [0, 0], to: [100, 0]}
  - {from: [100, 0], to: [100, 100]}
  - {from: [100, 100], to: [0, 100]}
  - {from: [0, 100], to: [0, 0]}
`

func writeFile(t *testing.T, name, data string) {
	require.NoError(t, os.WriteFile(name, []byte(data), 0644))
}

func TestWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	name := filepath.Join(dir, "box.yaml")
	writeFile(t, name, box)

	w, err := New(name)
	require.NoError(t, err)
	w.Debounce = 20 * time.Millisecond
	reloads := make(chan *level.Level, 4)
	errs := make(chan error, 4)
	w.OnReload = func(lvl *level.Level) { reloads <- lvl }
	w.OnError = func(err error) { errs <- err }
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()), "starting twice is harmless")

	// unrelated files are ignored
	writeFile(t, filepath.Join(dir, "other.yaml"), box)

	writeFile(t, name, box+"  - {from: [50, 0], to: [50, 40]}\n")
	select {
	case lvl := <-reloads:
		assert.Equal(t, "box", lvl.Name)
		assert.Len(t, lvl.Walls, 5)
	case err := <-errs:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}

	writeFile(t, name, "name: broken\nwalls: [")
	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-reloads:
		t.Fatal("broken level loaded")
	case <-time.After(5 * time.Second):
		t.Fatal("no error")
	}

	w.Stop()
	w.Stop()
	assert.Empty(t, reloads)
}

func TestWatcher_contextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "missing.yaml"), w.Path())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Stop()
}

func TestWatcher_missingDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New(filepath.Join(t.TempDir(), "nope", "level.yaml"))
	require.NoError(t, err)
	assert.Error(t, w.Start(context.Background()))
	w.Stop()
}
