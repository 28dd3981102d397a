// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Concommit - Concommit surfaces files that are frequently committed together with the file you are working on.
It reads recent git history, groups changed paths per commit and ranks co-committed files for quick navigation.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package config loads concommit settings from defaults, an optional YAML file and
// CONCOMMIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/bartekus/concommit/internal/logging"
)

// Sentinel validation errors.
var (
	ErrInvalidMaxCount   = errors.New("history.max_count must be positive")
	ErrInvalidMaxResults = errors.New("rank.max_results must not be negative")
	ErrInvalidLogLevel   = errors.New("unknown logging.level")
	ErrInvalidLogFormat  = errors.New("unknown logging.format")
	ErrInvalidFormat     = errors.New("unknown output.format")
)

// Default configuration values.
const (
	defaultMaxCount   = 100
	defaultMaxResults = 10
	defaultLogLevel   = "warn"
	defaultLogFormat  = "text"
	defaultFormat     = "text"

	// FileName is the config file looked up in the project root and the home directory.
	FileName  = ".concommit"
	envPrefix = "CONCOMMIT"
)

// Formats lists the accepted output formats.
var Formats = []string{"text", "table", "json", "yaml", "markdown"}

// Config holds all configuration for concommit.
type Config struct {
	History HistoryConfig `mapstructure:"history"`
	Rank    RankConfig    `mapstructure:"rank"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// HistoryConfig bounds the commit window.
type HistoryConfig struct {
	MaxCount int `mapstructure:"max_count"`
}

// RankConfig controls ranking and result filtering.
type RankConfig struct {
	MaxResults  int      `mapstructure:"max_results"`
	ExcludeDirs []string `mapstructure:"exclude_dirs"`
	TrackedOnly bool     `mapstructure:"tracked_only"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig selects the result renderer.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// Load reads configuration. configPath wins when set; otherwise .concommit.yaml is searched
// in each of searchDirs in order.
func Load(configPath string, searchDirs ...string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		for _, dir := range searchDirs {
			if dir != "" {
				v.AddConfigPath(dir)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" || len(searchDirs) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// SearchDirs returns the default config locations: the project root, then the home directory.
func SearchDirs(projectRoot string) []string {
	dirs := []string{projectRoot}
	if home, err := os.UserHomeDir(); err == nil && filepath.Clean(home) != filepath.Clean(projectRoot) {
		dirs = append(dirs, home)
	}
	return dirs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("history.max_count", defaultMaxCount)

	v.SetDefault("rank.max_results", defaultMaxResults)
	v.SetDefault("rank.exclude_dirs", []string{})
	v.SetDefault("rank.tracked_only", false)

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.format", defaultLogFormat)

	v.SetDefault("output.format", defaultFormat)
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.History.MaxCount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxCount, c.History.MaxCount)
	}
	if c.Rank.MaxResults < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxResults, c.Rank.MaxResults)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	if !ValidFormat(c.Output.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}
	return nil
}

// ValidFormat reports whether f is one of Formats.
func ValidFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
