// Package config loads codec and logging settings from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/log"
	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/wire"
)

// Config is the complete configuration of the converter.
type Config struct {
	Codec CodecConfig `yaml:"codec"`
	Log   LogConfig   `yaml:"log"`
}

// CodecConfig controls encoding and decoding.
type CodecConfig struct {
	Pretty        bool   `yaml:"pretty"`
	AllowComments bool   `yaml:"allow_comments"`
	Format        string `yaml:"format"`
	Capture       bool   `yaml:"capture"`
}

// LogConfig controls codec event logging.
type LogConfig struct {
	// File receives CBOR-encoded codec events when set.
	File string `yaml:"file"`

	// Level is the slog level for operational output.
	Level string `yaml:"level"`

	// Slog mirrors codec events to the operational logger.
	Slog bool `yaml:"slog"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Codec: CodecConfig{
			Format: "text",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Validate checks the format name and log level.
func (c *Config) Validate() error {
	if _, err := c.Format(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Format returns the parsed default wire format.
func (c *Config) Format() (wire.Format, error) {
	return wire.ParseFormat(c.Codec.Format)
}

// Level returns the parsed slog level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// CodecOptions returns the options for a wire.Codec. The logger is attached
// by the caller.
func (c *Config) CodecOptions() []wire.CodecOption {
	return []wire.CodecOption{
		wire.WithPretty(c.Codec.Pretty),
		wire.WithAllowComments(c.Codec.AllowComments),
		wire.WithCapture(c.Codec.Capture),
	}
}

// Loggers opens the codec event loggers selected by the configuration.
// The returned close function releases the log file, if any.
func (c *Config) Loggers(operational *slog.Logger) (log.Logger, func() error, error) {
	var loggers []log.Logger
	closeFn := func() error { return nil }

	if c.Log.File != "" {
		fl, err := log.NewFileLogger(c.Log.File)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		loggers = append(loggers, fl)
		closeFn = fl.Close
	}
	if c.Log.Slog && operational != nil {
		loggers = append(loggers, log.NewSlogAdapter(operational))
	}

	switch len(loggers) {
	case 0:
		return log.NoopLogger{}, closeFn, nil
	case 1:
		return loggers[0], closeFn, nil
	}
	return log.NewMultiLogger(loggers...), closeFn, nil
}
