// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/swfpack/cmd/swfpack/cli"
	"github.com/bureau-foundation/swfpack/lib/digest"
	"github.com/bureau-foundation/swfpack/lib/version"
)

func (a *app) versionCommand() *cli.Command {
	var full bool

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			flagSet.BoolVar(&full, "full", false, "include Go version, platform, and binary digest")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return usageError("version", "unexpected argument %q", args[0])
			}
			if !full {
				fmt.Fprintf(a.stdout, "swfpack %s\n", version.Info())
				return nil
			}
			fmt.Fprintf(a.stdout, "swfpack %s\n", version.Full())
			sum, path, err := version.SelfDigest()
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "  Binary: %s (%s)\n", digest.Short(sum), path)
			return nil
		},
	}
}
