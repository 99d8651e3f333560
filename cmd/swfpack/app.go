// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/swfpack/cmd/swfpack/cli"
	"github.com/bureau-foundation/swfpack/lib/config"
)

// app carries the process-wide streams so commands can be run in
// tests against buffers.
type app struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer
}

func (a *app) root() *cli.Command {
	return &cli.Command{
		Name:        "swfpack",
		Summary:     "Build SWF movies from scene descriptions",
		Description: "swfpack builds SWF movies from YAML, JSON, or CBOR scene descriptions\nand prints content digests of the results.",
		HelpOutput:  a.stderr,
		Subcommands: []*cli.Command{
			a.buildCommand(),
			a.digestCommand(),
			a.convertCommand(),
			a.versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Build a movie next to its scene",
				Command:     "swfpack build --output-dir . intro.yaml",
			},
			{
				Description: "Build for release and print the digest",
				Command:     "SWFPACK_CONFIG=release.yaml swfpack build --digest intro.yaml",
			},
		},
	}
}

// commonFlags are accepted by every command that loads configuration.
type commonFlags struct {
	configPath string
	verbose    bool
	logFormat  string
}

func (c *commonFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.configPath, "config", "", "path to swfpack.yaml (default: $SWFPACK_CONFIG, else built-in defaults)")
	flagSet.BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")
	flagSet.StringVar(&c.logFormat, "log-format", "", "log format: auto, text, or json (default: from config)")
}

// loadConfig loads the --config file, else the SWFPACK_CONFIG file,
// else the defaults.
func (a *app) loadConfig(flags commonFlags) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case flags.configPath != "":
		cfg, err = config.LoadFile(flags.configPath)
	case os.Getenv("SWFPACK_CONFIG") != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flags.verbose {
		cfg.Log.Level = "debug"
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	return cfg, nil
}

// validatedLogger validates cfg and returns the logger it describes.
func (a *app) validatedLogger(cfg *config.Config) (*slog.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	return cli.NewLogger(a.stderr, level, cfg.Log.Format)
}

var errUsage = errors.New("usage")

// usageError reports a usage mistake the way flag errors are reported.
func usageError(command, format string, args ...any) error {
	return fmt.Errorf("%w: %s\n\nRun 'swfpack %s --help' for usage.",
		errUsage, fmt.Sprintf(format, args...), command)
}
