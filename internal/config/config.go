package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the tool configuration.
type Config struct {
	Root      string `yaml:"root"`
	Language  string `yaml:"language"`
	Templates string `yaml:"templates"` // directory overriding block.tpl / translation.tpl
	Forms     string `yaml:"forms"`     // directory with extra form definitions
	LogLevel  string `yaml:"log_level"`

	// Defaults overrides field defaults for every form, e.g. the module name.
	Defaults map[string]any `yaml:"defaults"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Root:     ".",
		Language: "EN",
		LogLevel: "info",
	}
}

// Load reads a YAML config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be repaired with a default.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return errors.New("root must not be empty")
	}
	if strings.TrimSpace(c.Language) == "" {
		return errors.New("language must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["root"] {
		cfg.Root = fromFile.Root
	}
	if !explicitFlags["lang"] {
		cfg.Language = fromFile.Language
	}
	if !explicitFlags["templates"] {
		cfg.Templates = fromFile.Templates
	}
	if !explicitFlags["forms"] {
		cfg.Forms = fromFile.Forms
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	if len(fromFile.Defaults) > 0 {
		merged := make(map[string]any, len(fromFile.Defaults)+len(cfg.Defaults))
		for k, v := range fromFile.Defaults {
			merged[k] = v
		}
		for k, v := range cfg.Defaults {
			merged[k] = v
		}
		cfg.Defaults = merged
	}
}

// ParseLevel maps a level name onto slog.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}
