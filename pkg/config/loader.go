package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/provisio/pkg/errors"
	"github.com/arthur-debert/provisio/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override configuration
const EnvPrefix = "PROVISIO_"

// SystemConfigPath is the machine-wide configuration file
const SystemConfigPath = "/etc/provisio/config.toml"

// Options selects the configuration layers. Empty paths use the defaults;
// layers whose file does not exist are skipped, except ExplicitPath.
type Options struct {
	SystemPath   string
	UserPath     string
	ExplicitPath string
	// SkipEnv ignores PROVISIO_* variables
	SkipEnv bool
	// Overrides are dotted keys applied last, typically from flags
	Overrides map[string]interface{}
}

// UserConfigPath returns $XDG_CONFIG_HOME/provisio/config.toml
func UserConfigPath() string {
	xdg.Reload()
	return filepath.Join(xdg.ConfigHome, logging.AppName, "config.toml")
}

// Load builds the effective configuration
func Load(opts Options) (*Config, error) {
	k, err := loadKoanf(opts)
	if err != nil {
		return nil, err
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				trimmedSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadKoanf(opts Options) (*koanf.Koanf, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. System and user files, when present
	systemPath := opts.SystemPath
	if systemPath == "" {
		systemPath = SystemConfigPath
	}
	userPath := opts.UserPath
	if userPath == "" {
		userPath = UserConfigPath()
	}
	for _, path := range []string{systemPath, userPath} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail(errors.DetailPath, path)
		}
		log.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Explicit file, which must exist
	if opts.ExplicitPath != "" {
		if err := k.Load(file.Provider(opts.ExplicitPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", opts.ExplicitPath).
				WithDetail(errors.DetailPath, opts.ExplicitPath)
		}
		log.Debug().Str("path", opts.ExplicitPath).Msg("Loaded explicit config file")
	}

	// 4. Environment
	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 5. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	return k, nil
}
