// Package config loads user settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/xltrail/xltrail-go/pkg/xltrail"
	"github.com/xltrail/xltrail-go/pkg/xltrail/parser"
)

// Environment variables read by Load.
const (
	EnvConfig = "XLTRAIL_CONFIG"
	EnvColor  = "XLTRAIL_COLOR"
	EnvLog    = "XLTRAIL_LOG"
)

// Defaults
const (
	DefaultLogLevel = "error"
	DefaultPattern  = "*.xls*"
)

// Config holds user settings.
type Config struct {
	// Color enables ANSI styling of the report.
	Color bool `yaml:"color"`
	// Separator joins cell values into row signatures. Must be one rune.
	Separator string `yaml:"separator"`
	// Context is the number of unchanged lines around each change.
	Context int `yaml:"context"`
	// LogLevel is the zap level name for diagnostics on stderr.
	LogLevel string `yaml:"log_level"`
	// Pattern is the default file pattern of ls-files.
	Pattern string `yaml:"pattern"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Color:     true,
		Separator: parser.DefaultSeparator,
		Context:   xltrail.DefaultContext,
		LogLevel:  DefaultLogLevel,
		Pattern:   DefaultPattern,
	}
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "xltrail", "config.yaml")
}

// Load reads settings from path, or DefaultPath when path is empty, and
// applies environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv(EnvColor); v != "" {
		color, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvColor, err)
		}
		cfg.Color = color
	}
	if v := os.Getenv(EnvLog); v != "" {
		cfg.LogLevel = v
	}

	return cfg, cfg.Validate()
}

// Validate checks settings that would corrupt the report.
func (c Config) Validate() error {
	if utf8.RuneCountInString(c.Separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", c.Separator)
	}
	if c.Separator == "␛" {
		return fmt.Errorf("separator %q is reserved for escaping", c.Separator)
	}
	if c.Context < 0 {
		return fmt.Errorf("context must not be negative, got %d", c.Context)
	}
	return nil
}
