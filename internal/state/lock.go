package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/SistemasVox/clima-udi/internal/types"
)

// FileLock is the advisory lock guarding against overlapping cycles. The
// lock file holds the owner PID; a file older than maxAge is treated as
// leftover from a crashed run and broken on the next acquire.
type FileLock struct {
	path   string
	maxAge time.Duration
	clock  types.Clock
}

// NewFileLock builds a lock at path with the given staleness window.
func NewFileLock(path string, maxAge time.Duration, clock types.Clock) *FileLock {
	return &FileLock{path: path, maxAge: maxAge, clock: clock}
}

// Acquire takes the lock. It fails with ErrCodeLockHeld when another live
// run owns it and with ErrCodeLockUnavailable when the lock file itself
// cannot be managed.
func (l *FileLock) Acquire() error {
	err := l.create()
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return lockUnavailable(l.path, err)
	}

	info, statErr := os.Stat(l.path)
	if statErr != nil {
		if errors.Is(statErr, fs.ErrNotExist) {
			// Owner released between create and stat.
			if retryErr := l.create(); retryErr == nil {
				return nil
			}
		}
		return lockUnavailable(l.path, statErr)
	}

	age := l.clock.Now().Sub(info.ModTime())
	if age < l.maxAge {
		appErr := &types.AppError{
			Code:    types.ErrCodeLockHeld,
			Message: fmt.Sprintf("lock %s held by another run", l.path),
		}
		details := map[string]any{"age": age.Round(time.Second).String()}
		if pid := l.ownerPID(); pid != "" {
			details["pid"] = pid
		}
		return appErr.WithDetails(details)
	}

	if rmErr := os.Remove(l.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
		return lockUnavailable(l.path, rmErr)
	}
	if retryErr := l.create(); retryErr != nil {
		return lockUnavailable(l.path, retryErr)
	}
	return nil
}

// Release removes the lock file. Safe to call when the lock is not held.
func (l *FileLock) Release() error {
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return lockUnavailable(l.path, err)
	}
	return nil
}

func (l *FileLock) create() error {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	_, writeErr := fmt.Fprintf(f, "%d\n", os.Getpid())
	closeErr := f.Close()
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}

func (l *FileLock) ownerPID() string {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func lockUnavailable(path string, err error) error {
	return &types.AppError{
		Code:    types.ErrCodeLockUnavailable,
		Message: fmt.Sprintf("managing lock %s: %v", path, err),
		Err:     err,
	}
}
