package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the ofnvram configuration file (~/.config/ofnvram/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	// Output
	Format string `yaml:"format"`

	// Decoding
	Strict       *bool  `yaml:"strict"`
	Bounded      *bool  `yaml:"bounded"`
	MaxImageSize *int64 `yaml:"max_image_size"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ofnvram", "config.yaml")
}

// LoadConfig reads the config file at path, or at the default location when
// path is empty. A missing default file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
	}
	if path == "" {
		return Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyLogConfig applies config file defaults to the logging flags.
func applyLogConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyDecodeConfig applies config file defaults to decode command variables
// when the corresponding CLI flag was not explicitly set.
func applyDecodeConfig(c *cli.Command, cfg Config, strict, bounded *bool, maxSize *int64) {
	if cfg.Strict != nil && !c.IsSet("strict") {
		*strict = *cfg.Strict
	}
	if cfg.Bounded != nil && !c.IsSet("bounded") {
		*bounded = *cfg.Bounded
	}
	if cfg.MaxImageSize != nil && !c.IsSet("max-image-size") {
		*maxSize = *cfg.MaxImageSize
	}
}

// applyFormatConfig applies the configured output format.
func applyFormatConfig(c *cli.Command, cfg Config, format *string) {
	if cfg.Format != "" && !c.IsSet("format") {
		*format = cfg.Format
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}

type configKey struct{}

func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFromContext(ctx context.Context) Config {
	cfg, _ := ctx.Value(configKey{}).(Config)
	return cfg
}
