// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/swfpack/lib/compress"
)

// Profile selects a set of overrides.
type Profile string

const (
	// Development favours fast, inspectable builds.
	Development Profile = "development"
	// Release favours small output.
	Release Profile = "release"
)

// Config is the master configuration for swfpack.
type Config struct {
	// Profile selects which override section applies.
	Profile Profile `yaml:"profile"`

	// Writer configures the SWF writer.
	Writer WriterConfig `yaml:"writer"`

	// Assets configures where embedded files are read from.
	Assets AssetsConfig `yaml:"assets"`

	// Output configures where built movies go.
	Output OutputConfig `yaml:"output"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`

	// Per-profile overrides, applied after the base config is loaded.
	Development *Overrides `yaml:"development,omitempty"`
	Release     *Overrides `yaml:"release,omitempty"`
}

// Overrides contains fields that can be overridden per profile.
type Overrides struct {
	Writer *WriterOverrides `yaml:"writer,omitempty"`
	Output *OutputConfig    `yaml:"output,omitempty"`
	Log    *LogConfig       `yaml:"log,omitempty"`
}

// WriterOverrides mirrors WriterConfig with pointer fields so that an
// explicit false or zero can be told apart from an absent value.
type WriterOverrides struct {
	Version          *int     `yaml:"version,omitempty"`
	Compress         *bool    `yaml:"compress,omitempty"`
	CompressionLevel string   `yaml:"compression_level,omitempty"`
	FrameRate        *float64 `yaml:"frame_rate,omitempty"`
}

// WriterConfig configures the SWF writer.
type WriterConfig struct {
	// Version is the SWF version byte written to the header.
	// Default: 6
	Version int `yaml:"version"`

	// Compress enables zlib compression of the finished movie.
	// Default: false (development), true (release)
	Compress bool `yaml:"compress"`

	// CompressionLevel is a level name (none, best_speed, fast,
	// medium, best) or a digit 0-9.
	// Default: best
	CompressionLevel string `yaml:"compression_level"`

	// FrameRate is used when a scene does not set its own.
	// Default: 30
	FrameRate float64 `yaml:"frame_rate"`
}

// AssetsConfig configures asset loading.
type AssetsConfig struct {
	// Root is the directory scene asset paths are relative to. Empty
	// means the directory containing the scene file.
	Root string `yaml:"root"`
}

// OutputConfig configures output files.
type OutputConfig struct {
	// Directory is where built movies are written when no explicit
	// output path is given.
	// Default: .
	Directory string `yaml:"directory"`

	// FileMode is the octal permission of written files.
	// Default: 0644
	FileMode string `yaml:"file_mode"`

	// Digest prints the BLAKE3 digest of each built movie.
	// Default: false
	Digest bool `yaml:"digest"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	// Default: info
	Level string `yaml:"level"`

	// Format is text, json, or auto (text on a terminal, JSON
	// otherwise).
	// Default: auto
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Profile: Development,
		Writer: WriterConfig{
			Version:          6,
			Compress:         false,
			CompressionLevel: compress.LevelBest.String(),
			FrameRate:        30,
		},
		Output: OutputConfig{
			Directory: ".",
			FileMode:  "0644",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the SWFPACK_CONFIG environment
// variable. It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv("SWFPACK_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("SWFPACK_CONFIG environment variable not set; " +
			"set it to the path of your swfpack.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applies the
// selected profile's overrides, and expands path variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyProfileOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyProfileOverrides applies the overrides for the selected profile.
func (c *Config) applyProfileOverrides() {
	var overrides *Overrides

	switch c.Profile {
	case Development:
		overrides = c.Development
	case Release:
		overrides = c.Release
		if overrides == nil {
			compressed := true
			overrides = &Overrides{
				Writer: &WriterOverrides{
					Compress:         &compressed,
					CompressionLevel: compress.LevelBest.String(),
				},
			}
		}
	}

	if overrides == nil {
		return
	}

	if writer := overrides.Writer; writer != nil {
		if writer.Version != nil {
			c.Writer.Version = *writer.Version
		}
		if writer.Compress != nil {
			c.Writer.Compress = *writer.Compress
		}
		if writer.CompressionLevel != "" {
			c.Writer.CompressionLevel = writer.CompressionLevel
		}
		if writer.FrameRate != nil {
			c.Writer.FrameRate = *writer.FrameRate
		}
	}

	if output := overrides.Output; output != nil {
		if output.Directory != "" {
			c.Output.Directory = output.Directory
		}
		if output.FileMode != "" {
			c.Output.FileMode = output.FileMode
		}
		// Digest is a bool, so it is always applied from overrides.
		c.Output.Digest = output.Digest
	}

	if log := overrides.Log; log != nil {
		if log.Level != "" {
			c.Log.Level = log.Level
		}
		if log.Format != "" {
			c.Log.Format = log.Format
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":         os.Getenv("HOME"),
		"SWFPACK_ROOT": os.Getenv("SWFPACK_ROOT"),
	}

	c.Assets.Root = expandVars(c.Assets.Root, vars)
	c.Output.Directory = expandVars(c.Output.Directory, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Profile != Development && c.Profile != Release {
		errs = append(errs, fmt.Errorf("invalid profile: %s", c.Profile))
	}

	if c.Writer.Version < 1 || c.Writer.Version > 255 {
		errs = append(errs, fmt.Errorf("writer.version must be between 1 and 255, got %d", c.Writer.Version))
	}
	if c.Writer.Compress && c.Writer.Version < 6 {
		errs = append(errs, fmt.Errorf("writer.compress requires writer.version 6 or later, got %d", c.Writer.Version))
	}
	if _, err := c.CompressionLevel(); err != nil {
		errs = append(errs, fmt.Errorf("writer.compression_level: %w", err))
	}
	if !(c.Writer.FrameRate > 0 && c.Writer.FrameRate < 256) {
		errs = append(errs, fmt.Errorf("writer.frame_rate must be greater than 0 and less than 256, got %v", c.Writer.FrameRate))
	}

	if c.Output.Directory == "" {
		errs = append(errs, fmt.Errorf("output.directory is required"))
	}
	if _, err := c.FileMode(); err != nil {
		errs = append(errs, fmt.Errorf("output.file_mode: %w", err))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	formats := []string{"auto", "text", "json"}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CompressionLevel parses Writer.CompressionLevel.
func (c *Config) CompressionLevel() (compress.Level, error) {
	return compress.ParseLevel(c.Writer.CompressionLevel)
}

// FileMode parses Output.FileMode as an octal permission.
func (c *Config) FileMode() (fs.FileMode, error) {
	mode, err := strconv.ParseUint(c.Output.FileMode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as an octal mode: %w", c.Output.FileMode, err)
	}
	if mode == 0 || mode&^uint64(fs.ModePerm) != 0 {
		return 0, fmt.Errorf("%q is not a permission mode", c.Output.FileMode)
	}
	return fs.FileMode(mode), nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, err
	}
	return level, nil
}
