// Package config loads dedup's configuration. Defaults are embedded,
// then overridden by the user file in the XDG config directory, then by
// DEDUP_* environment variables.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dedup/pkg/errors"
	"github.com/arthur-debert/dedup/pkg/paths"
)

// Config is the typed configuration of a dedup run.
type Config struct {
	Scan   Scan   `koanf:"scan" toml:"scan"`
	Hash   Hash   `koanf:"hash" toml:"hash"`
	Trash  Trash  `koanf:"trash" toml:"trash"`
	Output Output `koanf:"output" toml:"output"`
}

// Scan configures traversal and filtering.
type Scan struct {
	FileTypes          []string `koanf:"file_types" toml:"file_types"`
	ExcludeDirs        []string `koanf:"exclude_dirs" toml:"exclude_dirs"`
	UseDefaultExcludes bool     `koanf:"use_default_excludes" toml:"use_default_excludes"`
	EstimateTotal      bool     `koanf:"estimate_total" toml:"estimate_total"`
}

// Hash configures the fingerprinting pass.
type Hash struct {
	Workers int `koanf:"workers" toml:"workers"`
}

// Trash configures the recoverable deletion target.
type Trash struct {
	Dir string `koanf:"dir" toml:"dir"`
}

// Output configures report rendering.
type Output struct {
	Format string `koanf:"format" toml:"format"`
	Color  bool   `koanf:"color" toml:"color"`
}

// Default returns the embedded defaults without consulting the user
// file or environment.
func Default() *Config {
	cfg, err := load(false)
	if err != nil {
		// The embedded defaults are compiled in; failing to parse them
		// is a programming error.
		panic(err)
	}
	return cfg
}

// Load returns the effective configuration: embedded defaults, user
// file, then environment overrides.
func Load() (*Config, error) {
	return load(true)
}

func load(withOverrides bool) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	if withOverrides {
		// 2. User config file, if present
		userPath := paths.ConfigFilePath()
		if _, err := os.Stat(userPath); err == nil {
			if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userPath)
			}
		}

		// 3. Environment: DEDUP_HASH_WORKERS -> hash.workers etc.
		err := k.Load(env.Provider("DEDUP_", ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "DEDUP_")), "_", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// TrashDir resolves the effective trash directory, preferring the
// configured override.
func (c *Config) TrashDir() string {
	if c.Trash.Dir != "" {
		return c.Trash.Dir
	}
	return paths.TrashDir()
}

// Generate renders the configuration as a TOML document, used by the
// genconfig command to seed a user config file.
func (c *Config) Generate() (string, error) {
	out, err := gotoml.Marshal(c)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
	}
	return string(out), nil
}
