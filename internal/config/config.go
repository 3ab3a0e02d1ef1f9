package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/quicklaunch/ql/internal/appdirs"
)

type UIConfig struct {
	Backend     string `toml:"backend" json:"backend"`
	ShowPreview bool   `toml:"show_preview" json:"show_preview"`
}

type SafetyConfig struct {
	ConfirmDangerous bool `toml:"confirm_dangerous" json:"confirm_dangerous"`
	SuggestTypoFixes bool `toml:"suggest_typo_fixes" json:"suggest_typo_fixes"`
	CheckPath        bool `toml:"check_path" json:"check_path"`
}

type ScriptsConfig struct {
	MaxAgeSeconds int    `toml:"max_age_seconds" json:"max_age_seconds"`
	Shell         string `toml:"shell,omitempty" json:"shell,omitempty"`
}

type LoggingConfig struct {
	File  string `toml:"file,omitempty" json:"file,omitempty"`
	Trace bool   `toml:"trace" json:"trace"`
}

type Config struct {
	Version int           `toml:"version" json:"version"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Safety  SafetyConfig  `toml:"safety" json:"safety"`
	Scripts ScriptsConfig `toml:"scripts" json:"scripts"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

func Default() Config {
	return Config{
		Version: 1,
		UI: UIConfig{
			Backend:     "auto",
			ShowPreview: true,
		},
		Safety: SafetyConfig{
			ConfirmDangerous: true,
			SuggestTypoFixes: true,
			CheckPath:        true,
		},
		Scripts: ScriptsConfig{
			MaxAgeSeconds: 300,
		},
		Logging: LoggingConfig{},
	}
}

// LoadOrCreate reads the settings file, writing the defaults on first run.
func LoadOrCreate() (Config, string, error) {
	path, err := appdirs.ConfigFilePath()
	if err != nil {
		return Config{}, "", err
	}

	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, "", fmt.Errorf("could not stat config path: %w", err)
		}
		if _, err := appdirs.EnsureConfigDir(); err != nil {
			return Config{}, "", err
		}
		if err := Save(path, cfg); err != nil {
			return Config{}, "", err
		}
		return cfg, path, nil
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, "", fmt.Errorf("could not read config file: %w", err)
	}
	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, "", fmt.Errorf("could not parse config file: %w", err)
	}
	cfg.normalize()
	return cfg, path, nil
}

func Save(path string, cfg Config) error {
	cfg.normalize()
	payload, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not encode config: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	if c.Version <= 0 {
		c.Version = 1
	}
	c.UI.Backend = strings.ToLower(strings.TrimSpace(c.UI.Backend))
	if c.UI.Backend == "" {
		c.UI.Backend = "auto"
	}
	if c.Scripts.MaxAgeSeconds <= 0 {
		c.Scripts.MaxAgeSeconds = 300
	}
}
