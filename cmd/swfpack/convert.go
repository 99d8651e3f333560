// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/swfpack/cmd/swfpack/cli"
	"github.com/bureau-foundation/swfpack/lib/scene"
	"github.com/bureau-foundation/swfpack/lib/sink"
)

type convertFlags struct {
	to     string
	output string
	force  bool
}

func (a *app) convertCommand() *cli.Command {
	var flags convertFlags

	return &cli.Command{
		Name:    "convert",
		Summary: "Convert a scene between YAML, JSON, and CBOR",
		Description: "Validate a scene and re-encode it. The output format is taken from --to,\n" +
			"else from the extension of -o, else YAML. CBOR output is deterministic,\n" +
			"so converted scenes can be digested and compared.",
		Usage: "swfpack convert <scene> [flags]",
		Examples: []cli.Example{
			{
				Description: "Store a scene compactly",
				Command:     "swfpack convert -o intro.cbor intro.yaml",
			},
			{
				Description: "Print a CBOR scene as JSON",
				Command:     "swfpack convert --to json intro.cbor",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			flagSet.StringVar(&flags.to, "to", "", "output format: yaml, json, or cbor")
			flagSet.StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
			flagSet.BoolVar(&flags.force, "force", false, "write CBOR to a terminal")
			return flagSet
		},
		Run: func(args []string) error {
			return a.runConvert(flags, args)
		},
	}
}

func (a *app) runConvert(flags convertFlags, args []string) error {
	if len(args) != 1 {
		return usageError("convert", "exactly one scene file is required, got %d", len(args))
	}

	format := scene.FormatYAML
	var err error
	switch {
	case flags.to != "":
		format, err = scene.ParseFormat(flags.to)
	case flags.output != "" && flags.output != "-":
		format, err = scene.FormatFor(flags.output)
	}
	if err != nil {
		return err
	}

	s, err := scene.Load(args[0])
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := scene.Encode(s, format)
	if err != nil {
		return err
	}

	if flags.output == "" || flags.output == "-" {
		allowTerminal := flags.force || format != scene.FormatCBOR
		return sink.NewWriter(a.stdout, allowTerminal).Put(a.ctx, "-", data)
	}
	destination := sink.Dir{Root: filepath.Dir(flags.output), Mode: sink.DefaultFileMode}
	return destination.Put(a.ctx, filepath.Base(flags.output), data)
}
