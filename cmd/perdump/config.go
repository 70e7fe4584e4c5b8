package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ranforge/asn1per/bitstream"
)

type config struct {
	msgType  string
	logLevel zapcore.Level
	maxDepth int
	strict   bool
}

func defaultConfig() config {
	return config{
		logLevel: zapcore.WarnLevel,
		maxDepth: bitstream.DefaultMaxDepth,
	}
}

type fileConfig struct {
	Type     string `toml:"type" yaml:"type"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
	MaxDepth *int   `toml:"max_depth" yaml:"max_depth"`
	Strict   *bool  `toml:"strict" yaml:"strict"`
}

// loadConfig applies the settings of a TOML or YAML file, chosen by
// extension, on top of cfg.
func loadConfig(path string, cfg config) (config, error) {
	var raw fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	default:
		return cfg, fmt.Errorf("config %s: unsupported format, use .toml or .yaml", path)
	}

	if t := strings.TrimSpace(raw.Type); t != "" {
		cfg.msgType = t
	}
	if raw.LogLevel != "" {
		lvl, err := zapcore.ParseLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return cfg, fmt.Errorf("parse log_level: %w", err)
		}
		cfg.logLevel = lvl
	}
	if raw.MaxDepth != nil {
		cfg.maxDepth = *raw.MaxDepth
	}
	if raw.Strict != nil {
		cfg.strict = *raw.Strict
	}
	return cfg, cfg.validate()
}

// validate checks settings that may come from either a file or flags.
func (c config) validate() error {
	if c.maxDepth < 1 {
		return fmt.Errorf("max_depth must be positive, got %d", c.maxDepth)
	}
	return nil
}
