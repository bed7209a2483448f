package filelock

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "nested", "build.lock")

	lock := New(lockPath)
	require.NoError(t, lock.Acquire())
	assert.FileExists(t, lockPath)
	require.NoError(t, lock.Release())
}

func TestTryAcquireHeld(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "build.lock")

	first := New(lockPath)
	require.NoError(t, first.Acquire())
	defer first.Release()

	second := New(lockPath)
	acquired, err := second.TryAcquire()
	require.NoError(t, err)
	assert.False(t, acquired, "second lock should not be acquired while first is held")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "manifest.json")

	require.NoError(t, WriteFile(path, []byte("one")))
	require.NoError(t, WriteFile(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestWriteLockedConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, WriteLocked(path, []byte(`{"files": []}`)))
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"files": []}`, string(data))
}
