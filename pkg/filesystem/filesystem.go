// Package filesystem provides the afero filesystems used by tldr and a few
// helpers that work on any of them.
package filesystem

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
)

// NewOS returns the real operating-system filesystem.
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an in-memory filesystem for tests.
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// IsOS reports whether fsys is backed by the operating system, which is
// required for anything that needs real file descriptors.
func IsOS(fsys afero.Fs) bool {
	_, ok := fsys.(*afero.OsFs)
	return ok
}

// FileExists reports whether path exists and is not a directory.
func FileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists reports whether path exists and is a directory.
func DirExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// IsNotExist reports whether err means the path is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
