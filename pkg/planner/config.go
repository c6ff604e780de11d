package planner

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/h2plan/h2plan/pkg/logging"
	"github.com/h2plan/h2plan/pkg/scenario"
	"github.com/h2plan/h2plan/pkg/validation"
)

// Config is the on-disk shape of a run: log level plus the economic
// settings, decoded over the defaults so a file only has to name the
// knobs it changes.
type Config struct {
	LogLevel string            `yaml:"log_level"`
	Settings scenario.Settings `yaml:"settings"`
}

// DefaultConfig returns the stock run configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel: "INFO",
		Settings: scenario.DefaultSettings(),
	}
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("planner: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over the default config and validates the
// result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("planner: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config. An empty log level falls back to INFO at
// parse time, so only non-empty values are checked.
func (c *Config) Validate() error {
	cv := validation.NewConfigValidator("Config")

	cv.When(c.LogLevel != "", func(v *validation.ConfigValidator) {
		v.OneOf("LogLevel", strings.ToUpper(c.LogLevel),
			[]string{"DEBUG", "INFO", "WARN", "WARNING", "ERROR"})
	})
	cv.Custom("Settings", c.Settings.Validate)

	return cv.Validate()
}

// Level returns the configured log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}
