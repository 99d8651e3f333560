// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/swfpack/cmd/swfpack/cli"
	"github.com/bureau-foundation/swfpack/lib/compress"
	"github.com/bureau-foundation/swfpack/lib/digest"
)

// errNotMovie is returned for files without an SWF signature.
var errNotMovie = errors.New("not an SWF movie")

type digestFlags struct {
	content bool
	short   bool
	check   string
}

func (a *app) digestCommand() *cli.Command {
	var flags digestFlags

	return &cli.Command{
		Name:    "digest",
		Summary: "Print movie digests",
		Description: "Print the BLAKE3 digest of each movie file.\n\n" +
			"The file digest covers the bytes on disk. The content digest (--content)\n" +
			"covers the uncompressed movie after the eight-byte signature, so a movie\n" +
			"has the same content digest whether or not it is compressed.",
		Usage: "swfpack digest <movie>... [flags]",
		Examples: []cli.Example{
			{
				Description: "Compare a compressed and an uncompressed build",
				Command:     "swfpack digest --content intro.swf intro-debug.swf",
			},
			{
				Description: "Verify a movie against a published digest",
				Command:     "swfpack digest --check 3f9a... intro.swf",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("digest", pflag.ContinueOnError)
			flagSet.BoolVar(&flags.content, "content", false, "digest the uncompressed content instead of the file")
			flagSet.BoolVar(&flags.short, "short", false, "print abbreviated digests")
			flagSet.StringVar(&flags.check, "check", "", "exit 1 unless the single movie has this digest")
			return flagSet
		},
		Run: func(args []string) error {
			return a.runDigest(flags, args)
		},
	}
}

func (a *app) runDigest(flags digestFlags, paths []string) error {
	if len(paths) == 0 {
		return usageError("digest", "at least one movie file is required")
	}
	if flags.check != "" {
		if len(paths) != 1 {
			return usageError("digest", "--check accepts a single movie, got %d", len(paths))
		}
		return a.checkDigest(flags, paths[0])
	}

	for _, path := range paths {
		sum, err := movieDigest(path, flags.content)
		if err != nil {
			return err
		}
		text := digest.Format(sum)
		if flags.short {
			text = digest.Short(sum)
		}
		fmt.Fprintf(a.stdout, "%s  %s\n", text, path)
	}
	return nil
}

func (a *app) checkDigest(flags digestFlags, path string) error {
	want, err := digest.Parse(flags.check)
	if err != nil {
		return fmt.Errorf("--check: %w", err)
	}
	got, err := movieDigest(path, flags.content)
	if err != nil {
		return err
	}
	if got != want {
		fmt.Fprintf(a.stdout, "%s: MISMATCH (got %s)\n", path, digest.Format(got))
		return &cli.ExitError{Code: 1}
	}
	fmt.Fprintf(a.stdout, "%s: OK\n", path)
	return nil
}

func movieDigest(path string, content bool) (digest.Digest, error) {
	if !content {
		return digest.HashFile(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return digest.Digest{}, err
	}
	body, err := movieBody(data)
	if err != nil {
		return digest.Digest{}, fmt.Errorf("%s: %w", path, err)
	}
	return digest.Content(body), nil
}

// movieBody returns everything after the eight-byte signature,
// inflated if the movie is compressed. The length in the signature
// must match.
func movieBody(data []byte) ([]byte, error) {
	const signatureLength = 8
	if len(data) < signatureLength || data[1] != 'W' || data[2] != 'S' {
		return nil, errNotMovie
	}

	var body []byte
	switch data[0] {
	case 'F':
		body = data[signatureLength:]
	case 'C':
		inflated, err := compress.Inflate(data[signatureLength:])
		if err != nil {
			return nil, fmt.Errorf("decompressing: %w", err)
		}
		body = inflated
	default:
		return nil, errNotMovie
	}

	if declared := binary.LittleEndian.Uint32(data[4:signatureLength]); int64(declared) != int64(len(body))+signatureLength {
		return nil, fmt.Errorf("header declares %d bytes, movie has %d", declared, len(body)+signatureLength)
	}
	return body, nil
}
