package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/tldr/pkg/errors"
	"github.com/arthur-debert/tldr/pkg/logging"
	"github.com/arthur-debert/tldr/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix starts every configuration environment variable
	EnvPrefix = "TLDR_"

	// envSectionSeparator splits section from key in variable names
	envSectionSeparator = "__"
)

// Load builds the configuration from defaults, the file at path (skipped
// when empty or missing), the environment and overrides. Override keys use
// dotted paths such as "display.use_pager".
func Load(path string, overrides map[string]any) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "failed to load default configuration")
	}

	loadedPath := ""
	if path != "" {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			return nil, errors.Newf(errors.ErrConfig, "config path %s is a directory", path)
		case err == nil:
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfig, "failed to load config from %s", path).
					WithDetail("path", path)
			}
			loadedPath = path
			logger.Debug().Str("path", path).Msg("Loaded config file")
		case os.IsNotExist(err):
			logger.Debug().Str("path", path).Msg("No config file, using defaults")
		default:
			return nil, errors.Wrapf(err, errors.ErrConfig, "cannot access config file %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "failed to load environment variables")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfig, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "invalid configuration")
	}
	cfg.Path = loadedPath

	if err := postProcess(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps TLDR_DISPLAY__USE_PAGER to display.use_pager. Variables
// without a section separator, such as TLDR_CACHE_DIR, are not
// configuration keys and are skipped.
func envKey(name string) string {
	key := strings.TrimPrefix(name, EnvPrefix)
	if !strings.Contains(key, envSectionSeparator) {
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(key), envSectionSeparator, ".")
}

func postProcess(cfg *Config) error {
	cfg.Directories.CustomPagesDir = paths.ExpandHome(cfg.Directories.CustomPagesDir)

	if cfg.Updates.AutoUpdateIntervalHours < 0 {
		return errors.Newf(errors.ErrConfig, "updates.auto_update_interval_hours must not be negative (got %d)",
			cfg.Updates.AutoUpdateIntervalHours)
	}
	if cfg.Updates.Timeout <= 0 {
		return errors.Newf(errors.ErrConfig, "updates.timeout must be positive (got %s)", cfg.Updates.Timeout)
	}

	if err := cfg.StyleConfig(true).Validate(); err != nil {
		return errors.Wrap(err, errors.ErrConfig, "invalid style configuration")
	}
	return nil
}
