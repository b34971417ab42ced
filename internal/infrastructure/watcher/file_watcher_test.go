package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "integrations.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0600))

	var calls atomic.Int32
	fw, err := NewFileWatcher(path, 100*time.Millisecond, func(string) {
		calls.Add(1)
	})
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	defer fw.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0600))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFileWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "integrations.yaml")

	var calls atomic.Int32
	fw, err := NewFileWatcher(path, 50*time.Millisecond, func(string) {
		calls.Add(1)
	})
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	defer fw.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0600))
	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	fw, err := NewFileWatcher(filepath.Join(t.TempDir(), "x.yaml"), 0, func(string) {})
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	fw.Stop()
	fw.Stop()
}
