// Package config loads dotlink's configuration.
//
// Configuration is layered: embedded defaults, then an optional
// dotlink.toml (or .dotlink.toml) at the dotfiles repo root, then
// DOTLINK_-prefixed environment variables. Later layers win.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dotlink/dotlink/pkg/errors"
)

// Config is the resolved tool configuration.
type Config struct {
	// SourceDir is the directory name under the repo root holding units.
	SourceDir string `koanf:"source_dir"`

	// BackupsDir is the directory name under the repo root for snapshots.
	BackupsDir string `koanf:"backups_dir"`

	// TargetDir overrides the platform configuration directory when set.
	TargetDir string `koanf:"target_dir"`

	// Editor overrides $EDITOR for the edit command.
	Editor string `koanf:"editor"`

	// Theme points to a styles YAML file loaded over the embedded defaults.
	// Relative paths are resolved against the repo root.
	Theme string `koanf:"theme"`

	// Install maps a platform name to the package-manager command run by
	// the install command, e.g. install.linux = ["sudo", "apt", "install", ...].
	Install map[string][]string `koanf:"install"`
}

// EnvPrefix is the prefix for environment variable overrides,
// e.g. DOTLINK_TARGET_DIR.
const EnvPrefix = "DOTLINK_"

// Load builds the configuration for the given repo root. A missing config
// file is fine; defaults plus environment still apply.
func Load(repoRoot string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	for _, filename := range []string{".dotlink.toml", "dotlink.toml"} {
		path := filepath.Join(repoRoot, filename)
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load config file").
					WithDetail("path", path)
			}
			break
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	return &cfg, nil
}

// rawBytesProvider feeds embedded bytes to koanf.
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "rawBytesProvider does not support Read")
}
