package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SistemasVox/clima-udi/internal/types"
)

func TestFileLockAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycle.lock")
	lock := NewFileLock(path, 5*time.Minute, types.RealClock{})

	require.NoError(t, lock.Acquire())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	require.NoError(t, lock.Release())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileLockHeldByLiveRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycle.lock")

	first := NewFileLock(path, 5*time.Minute, types.RealClock{})
	require.NoError(t, first.Acquire())

	second := NewFileLock(path, 5*time.Minute, types.RealClock{})
	err := second.Acquire()
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeLockHeld, types.CodeOf(err))

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fmt.Sprint(os.Getpid()), appErr.Details["pid"])
}

func TestFileLockBreaksStale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycle.lock")
	require.NoError(t, os.WriteFile(path, []byte("424242\n"), 0o644))

	// Age the file past the staleness window.
	old := time.Now().Add(-10 * time.Minute)
	require.NoError(t, os.Chtimes(path, old, old))

	lock := NewFileLock(path, 5*time.Minute, types.RealClock{})
	require.NoError(t, lock.Acquire())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(data))
}

func TestFileLockReleaseWithoutAcquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycle.lock")
	lock := NewFileLock(path, 5*time.Minute, types.RealClock{})
	assert.NoError(t, lock.Release())
}
