// Package config loads the exrdump.toml settings of the dump tool.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/simonhull/exrheader"
)

// FileName is the configuration file looked up when no path is given.
const FileName = "exrdump.toml"

// Config holds the dump tool settings.
type Config struct {
	Strict      bool
	Validate    bool
	LogLevel    zerolog.Level
	NoColor     bool
	OpaqueTypes []string // extra type names kept as raw bytes without a warning
}

// exrdump.toml key mapping to Config.
type fileConfig struct {
	Strict      bool     `toml:"strict"`
	Validate    bool     `toml:"validate"`
	LogLevel    string   `toml:"log_level"`
	NoColor     bool     `toml:"no_color"`
	OpaqueTypes []string `toml:"opaque_types"`
}

// Default returns the settings used when there is no config file.
func Default() Config {
	return Config{LogLevel: zerolog.WarnLevel}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load exrdump config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load exrdump config: unknown keys %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}
	if meta.IsDefined("validate") {
		cfg.Validate = raw.Validate
	}
	if meta.IsDefined("log_level") {
		level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw.LogLevel)))
		if err != nil {
			return Config{}, fmt.Errorf("load exrdump config: log_level: %w", err)
		}
		cfg.LogLevel = level
	}
	if meta.IsDefined("no_color") {
		cfg.NoColor = raw.NoColor
	}
	if meta.IsDefined("opaque_types") {
		for _, name := range raw.OpaqueTypes {
			name = strings.TrimSpace(name)
			if name == "" {
				return Config{}, errors.New("load exrdump config: opaque_types: empty type name")
			}
			cfg.OpaqueTypes = append(cfg.OpaqueTypes, name)
		}
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Registry returns the built-in types plus OpaqueTypes. Naming a built-in
// type in OpaqueTypes is an error.
func (c Config) Registry() (*exrheader.Registry, error) {
	reg := exrheader.NewDefaultRegistry()
	for _, name := range c.OpaqueTypes {
		if err := reg.Register(name, exrheader.OpaqueConstructor(name)); err != nil {
			return nil, fmt.Errorf("opaque_types: %w", err)
		}
	}
	return reg, nil
}

// ReadOptions translates c into header parse options.
func (c Config) ReadOptions(logger zerolog.Logger) ([]exrheader.Option, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}
	opts := []exrheader.Option{
		exrheader.WithRegistry(reg),
		exrheader.WithLogger(logger),
	}
	if c.Strict {
		opts = append(opts, exrheader.WithStrictTypes())
	}
	if c.Validate {
		opts = append(opts, exrheader.WithValidation())
	}
	return opts, nil
}
