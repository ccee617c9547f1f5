package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"shatilah/internal/format"
	"shatilah/internal/logging"
	"shatilah/internal/store"
)

// Config is the application configuration.
// Priority: flags > ENV > YAML > env-default tags.
type Config struct {
	Dir     string    `yaml:"dir"     env:"SHATILAH_DIR"`
	Backend string    `yaml:"backend" env:"SHATILAH_BACKEND" env-default:"sqlite"`
	Format  string    `yaml:"format"  env:"SHATILAH_FORMAT"  env-default:"json"`
	Locale  string    `yaml:"locale"  env:"SHATILAH_LOCALE"  env-default:"en-US"`
	Log     LogConfig `yaml:"log"`
	TUI     TUIConfig `yaml:"tui"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"SHATILAH_LOG_LEVEL" env-default:"info"`
	// File defaults to <store dir>/shatilah.log when empty.
	File string `yaml:"file" env:"SHATILAH_LOG_FILE"`
}

type TUIConfig struct {
	// Glyphs is unicode or ascii.
	Glyphs         string `yaml:"glyphs"           env:"SHATILAH_TUI_GLYPHS"     env-default:"unicode"`
	HideStartQuote bool   `yaml:"hide_start_quote" env:"SHATILAH_TUI_NO_QUOTE"`
}

// Path returns the config file location: $SHATILAH_CONFIG, else
// <user config dir>/shatilah/config.yaml. explicit reports whether the env var was set.
func Path() (path string, explicit bool, err error) {
	if p := strings.TrimSpace(os.Getenv("SHATILAH_CONFIG")); p != "" {
		return p, true, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(dir, "shatilah", "config.yaml"), false, nil
}

// Load reads the YAML file if present, then the environment.
// A missing file is only an error when SHATILAH_CONFIG points at it.
func Load() (*Config, error) {
	var cfg Config

	path, explicit, err := Path()
	if err != nil {
		explicit = false
		path = ""
	}

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
			return validated(&cfg)
		} else if explicit {
			return nil, fmt.Errorf("config: file %s: %w", path, statErr)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return validated(&cfg)
}

func validated(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := store.ParseBackend(c.Backend); err != nil {
		errs = append(errs, err)
	}
	if !format.ValidFormat(c.Format) {
		errs = append(errs, fmt.Errorf("unknown format: %s (want json|edn)", c.Format))
	}
	if !format.ValidLocale(c.Locale) {
		errs = append(errs, fmt.Errorf("invalid locale: %q", c.Locale))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(strings.TrimSpace(c.TUI.Glyphs)) {
	case "", "unicode", "utf8", "ascii":
	default:
		errs = append(errs, fmt.Errorf("unknown glyph set: %s (want unicode|ascii)", c.TUI.Glyphs))
	}
	return errors.Join(errs...)
}

// StoreDir returns the configured dir or the default store location.
func (c *Config) StoreDir() (string, error) {
	if d := strings.TrimSpace(c.Dir); d != "" {
		return d, nil
	}
	return store.DefaultDir()
}

// LogFile returns the configured log path, defaulting into the store dir.
func (c *Config) LogFile(storeDir string) string {
	if f := strings.TrimSpace(c.Log.File); f != "" {
		return f
	}
	return filepath.Join(storeDir, logging.FileName)
}
