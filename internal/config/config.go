// Package config loads user overrides for tb's keymap, palette, and
// per-backend defaults from an optional YAML file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tb/internal/log"
)

// PaletteConfig overrides the two built-in foreground slots (backend
// colors are declared by the backend itself and are not configurable
// here).
type PaletteConfig struct {
	RegularANSI8   int `mapstructure:"regular_ansi8"`
	RegularANSI256 int `mapstructure:"regular_ansi256"`
	MutedANSI8     int `mapstructure:"muted_ansi8"`
	MutedANSI256   int `mapstructure:"muted_ansi256"`
}

// Config holds all configuration options for tb.
type Config struct {
	// Keymap maps a key-sequence spec (keybinder.ParseSequence syntax,
	// e.g. "^F" or "z z") to a tokenized command string (e.g. "scroll
	// page-down"). Entries here are bound on top of the default keymap,
	// so a user can override or add single bindings without restating
	// the whole table.
	Keymap map[string]string `mapstructure:"keymap"`

	Palette PaletteConfig `mapstructure:"palette"`

	// Backends holds per-backend default settings, keyed by the
	// factory's info().Name. Each backend's Factory.From decides how to
	// interpret its own sub-map; tb itself only plumbs it through.
	Backends map[string]map[string]any `mapstructure:"backends"`
}

// Defaults returns the zero-value configuration: no keymap overrides,
// built-in palette, no per-backend defaults.
func Defaults() Config {
	return Config{
		Keymap:   map[string]string{},
		Backends: map[string]map[string]any{},
	}
}

// Load reads configuration from path if non-empty, else from the
// TB_CONFIG environment variable, else from the first of
// "./.tb/config.yaml" or "$HOME/.config/tb/config.yaml" that exists.
// A missing config file is not an error: Load returns Defaults().
func Load(path string) (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetConfigType("yaml")

	switch {
	case path != "":
		v.SetConfigFile(path)
	case os.Getenv("TB_CONFIG") != "":
		v.SetConfigFile(os.Getenv("TB_CONFIG"))
	default:
		if _, err := os.Stat(".tb/config.yaml"); err == nil {
			v.SetConfigFile(".tb/config.yaml")
		} else if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tb"))
			v.SetConfigName("config")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	log.Info(log.CatConfig, "config loaded", "path", v.ConfigFileUsed())

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	// viper lower-cases every key it reads, which would turn "^F" into
	// "^f" and merge "J" with "j"; the keymap is decoded from the file
	// directly so its keys keep their case.
	if raw, err := os.ReadFile(v.ConfigFileUsed()); err == nil {
		var km struct {
			Keymap map[string]string `yaml:"keymap"`
		}
		if err := yaml.Unmarshal(raw, &km); err == nil && km.Keymap != nil {
			cfg.Keymap = km.Keymap
		}
	}
	return cfg, nil
}
