//go:build unix

package cache

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/tldr/pkg/errors"
	"github.com/arthur-debert/tldr/pkg/filesystem"
	"golang.org/x/sys/unix"
)

// cacheLock is an exclusive flock on <root>/.tldr.lock serializing updates
// and clears between tldr processes. The kernel drops the lock when the
// descriptor is closed, including on crash.
type cacheLock struct {
	file *os.File
}

// acquireLock blocks until the cache lock is held. Filesystems not backed
// by the OS get a no-op lock.
func (c *Cache) acquireLock(root string) (*cacheLock, error) {
	if !filesystem.IsOS(c.fs) {
		return &cacheLock{}, nil
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCache, "could not create cache directory").
			WithDetail("path", root)
	}

	lockPath := filepath.Join(root, lockFileName)
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCache, "could not open cache lock").
			WithDetail("path", lockPath)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, errors.ErrCache, "could not lock cache").
			WithDetail("path", lockPath)
	}

	c.logger.Trace().Str("path", lockPath).Msg("Acquired cache lock")
	return &cacheLock{file: f}, nil
}

// Release unlocks and closes the lock file. Safe to call more than once.
func (l *cacheLock) Release() {
	if l == nil || l.file == nil {
		return
	}
	_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	_ = l.file.Close()
	l.file = nil
}
