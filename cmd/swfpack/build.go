// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/swfpack/cmd/swfpack/cli"
	"github.com/bureau-foundation/swfpack/lib/asset"
	"github.com/bureau-foundation/swfpack/lib/compress"
	"github.com/bureau-foundation/swfpack/lib/config"
	"github.com/bureau-foundation/swfpack/lib/digest"
	"github.com/bureau-foundation/swfpack/lib/scene"
	"github.com/bureau-foundation/swfpack/lib/sink"
	"github.com/bureau-foundation/swfpack/lib/swf"
)

// minCompressedVersion is the first SWF version players decompress.
const minCompressedVersion = 6

type buildFlags struct {
	common     commonFlags
	output     string
	outputDir  string
	compress   bool
	noCompress bool
	level      string
	digest     bool
	force      bool
}

func (a *app) buildCommand() *cli.Command {
	var flags buildFlags

	return &cli.Command{
		Name:    "build",
		Summary: "Build movies from scene descriptions",
		Description: "Build one SWF movie per scene file. Each movie is written atomically as\n" +
			"<scene name>.swf in the output directory, or to the path given by -o.\n" +
			"Asset paths in a scene are relative to the scene file unless\n" +
			"assets.root is configured.",
		Usage: "swfpack build <scene>... [flags]",
		Examples: []cli.Example{
			{
				Description: "Build two scenes into dist/",
				Command:     "swfpack build --output-dir dist intro.yaml outro.json",
			},
			{
				Description: "Build a compressed movie to stdout",
				Command:     "swfpack build --compress -o - intro.yaml > intro.swf",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("build", pflag.ContinueOnError)
			flags.common.register(flagSet)
			flagSet.StringVarP(&flags.output, "output", "o", "", "output file for a single scene (- for stdout)")
			flagSet.StringVar(&flags.outputDir, "output-dir", "", "directory for built movies (default: from config)")
			flagSet.BoolVar(&flags.compress, "compress", false, "compress movies")
			flagSet.BoolVar(&flags.noCompress, "no-compress", false, "do not compress movies")
			flagSet.StringVar(&flags.level, "level", "", "compression level: none, best_speed, fast, medium, best, or 0-9")
			flagSet.BoolVar(&flags.digest, "digest", false, "print the digest of each movie")
			flagSet.BoolVar(&flags.force, "force", false, "write binary output to a terminal")
			return flagSet
		},
		Run: func(args []string) error {
			return a.runBuild(flags, args)
		},
	}
}

func (a *app) runBuild(flags buildFlags, scenes []string) error {
	if len(scenes) == 0 {
		return usageError("build", "at least one scene file is required")
	}
	if flags.output != "" && len(scenes) > 1 {
		return usageError("build", "-o accepts a single scene, got %d", len(scenes))
	}
	if flags.output != "" && flags.outputDir != "" {
		return usageError("build", "-o and --output-dir are mutually exclusive")
	}
	if flags.compress && flags.noCompress {
		return usageError("build", "--compress and --no-compress are mutually exclusive")
	}

	cfg, err := a.loadConfig(flags.common)
	if err != nil {
		return err
	}
	switch {
	case flags.compress:
		cfg.Writer.Compress = true
	case flags.noCompress:
		cfg.Writer.Compress = false
	}
	if flags.level != "" {
		cfg.Writer.CompressionLevel = flags.level
	}
	if flags.outputDir != "" {
		cfg.Output.Directory = flags.outputDir
	}
	if flags.digest {
		cfg.Output.Digest = true
	}

	logger, err := a.validatedLogger(cfg)
	if err != nil {
		return err
	}

	for _, path := range scenes {
		if err := a.buildScene(cfg, flags, path, logger.With("command", "build", "scene", path)); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) buildScene(cfg *config.Config, flags buildFlags, path string, logger *slog.Logger) error {
	s, err := scene.Load(path)
	if err != nil {
		return err
	}

	level, err := cfg.CompressionLevel()
	if err != nil {
		return err
	}
	compressed := s.Compression(cfg.Writer.Compress)
	if compressed && cfg.Writer.Version < minCompressedVersion {
		return fmt.Errorf("%s: compression requires SWF version %d or later, configured version is %d",
			path, minCompressedVersion, cfg.Writer.Version)
	}

	writer, err := swf.New(swf.Options{
		Version:    uint8(cfg.Writer.Version),
		Compress:   compressed,
		Compressor: compress.Zlib{Level: level},
		FrameRate:  cfg.Writer.FrameRate,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	assetRoot := cfg.Assets.Root
	if assetRoot == "" {
		assetRoot = filepath.Dir(path)
	}
	symbols, err := scene.Build(s, writer, asset.Dir(assetRoot))
	if err != nil {
		return fmt.Errorf("building %s: %w", path, err)
	}

	movie, err := writer.Finish()
	if err != nil {
		return fmt.Errorf("building %s: %w", path, err)
	}
	frames := writer.FrameCount()
	size := len(movie)
	storedCompressed := movie[0] == 'C'
	sum := digest.File(movie)

	destination, name, display, err := a.buildDestination(cfg, flags, path)
	if err != nil {
		return err
	}
	if err := writer.Close(a.ctx, destination, name); err != nil {
		return err
	}

	attrs := []any{
		"output", display,
		"bytes", size,
		"size", humanize.Bytes(uint64(size)),
		"frames", frames,
		"symbols", len(symbols),
		"compressed", storedCompressed,
	}
	if cfg.Output.Digest {
		attrs = append(attrs, "digest", digest.Format(sum))
	}
	logger.Info("built movie", attrs...)

	if cfg.Output.Digest && display != "-" {
		fmt.Fprintf(a.stdout, "%s  %s\n", digest.Format(sum), display)
	}
	return nil
}

// buildDestination returns where a scene's movie goes: the sink, the
// name within it, and the path shown to the user.
func (a *app) buildDestination(cfg *config.Config, flags buildFlags, scenePath string) (sink.Sink, string, string, error) {
	if flags.output == "-" {
		return sink.NewWriter(a.stdout, flags.force), "-", "-", nil
	}

	mode, err := cfg.FileMode()
	if err != nil {
		return nil, "", "", err
	}
	if flags.output != "" {
		return sink.Dir{Root: filepath.Dir(flags.output), Mode: mode}, filepath.Base(flags.output), flags.output, nil
	}

	base := filepath.Base(scenePath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".swf"
	return sink.Dir{Root: cfg.Output.Directory, Mode: mode}, name, filepath.Join(cfg.Output.Directory, name), nil
}
