package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/tldr/pkg/errors"
)

// Environment variable names
const (
	// EnvCacheDir overrides the XDG cache directory for tldr
	EnvCacheDir = "TLDR_CACHE_DIR"

	// EnvConfigDir overrides the XDG config directory for tldr
	EnvConfigDir = "TLDR_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "tldr"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "tldr.log"
)

// Source records where a resolved directory came from.
type Source int

const (
	// SourceOSConvention means the directory follows the platform default
	SourceOSConvention Source = iota
	// SourceEnvVariable means an environment variable named the directory
	SourceEnvVariable
	// SourceExplicit means the caller passed the directory in directly
	SourceExplicit
)

func (s Source) String() string {
	switch s {
	case SourceEnvVariable:
		return "env variable"
	case SourceExplicit:
		return "explicit"
	default:
		return "OS convention"
	}
}

// CacheDir returns the directory holding the page cache.
func CacheDir() (string, Source, error) {
	return resolveDir(EnvCacheDir, xdg.CacheHome, "cache")
}

// ConfigDir returns the directory holding config.toml.
func ConfigDir() (string, Source, error) {
	return resolveDir(EnvConfigDir, xdg.ConfigHome, "config")
}

// ConfigPath returns the location of the user configuration file.
func ConfigPath() (string, Source, error) {
	dir, source, err := ConfigDir()
	if err != nil {
		return "", source, err
	}
	return filepath.Join(dir, ConfigFileName), source, nil
}

// LogFilePath returns the log file location under the XDG state directory.
func LogFilePath() string {
	return filepath.Join(xdg.StateHome, AppDirName, LogFileName)
}

func resolveDir(envName, base, kind string) (string, Source, error) {
	if value := os.Getenv(envName); value != "" {
		dir := ExpandHome(value)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return "", SourceEnvVariable, errors.Newf(errors.ErrConfig,
				"path specified by $%s is not a directory", envName).
				WithDetail("path", dir)
		}
		return dir, SourceEnvVariable, nil
	}

	if base == "" {
		return "", SourceOSConvention, errors.Newf(errors.ErrConfig,
			"could not determine the %s directory", kind)
	}
	return filepath.Join(base, AppDirName), SourceOSConvention, nil
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user forms are left alone
	return path
}
