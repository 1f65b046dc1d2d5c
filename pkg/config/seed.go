package config

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/tldr/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

// DefaultContent returns the default configuration as a TOML document.
func DefaultContent() ([]byte, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "failed to load default configuration")
	}

	out, err := gotoml.Marshal(k.Raw())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "failed to serialize default configuration")
	}
	return out, nil
}

// Seed writes the default configuration to path. An existing file is never
// overwritten.
func Seed(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrConfig, "a configuration file already exists at %s, no default written", path).
			WithDetail("path", path)
	}

	content, err := DefaultContent()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrConfig, "could not create config directory").
			WithDetail("path", filepath.Dir(path))
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfig, "could not create config file %s", path)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, errors.ErrConfig, "could not write config file %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrConfig, "could not write config file %s", path)
	}
	return nil
}
