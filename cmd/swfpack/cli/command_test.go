// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "swfpack",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "build",
				Run: func(args []string) error {
					called = "build"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"build"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "build" {
		t.Errorf("dispatched to %q, want %q", called, "build")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "swfpack",
		Subcommands: []*Command{
			{
				Name: "scene",
				Subcommands: []*Command{
					{
						Name: "convert",
						Run: func(args []string) error {
							called = "scene convert"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"scene", "convert", "intro.yaml"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "scene convert" {
		t.Errorf("dispatched to %q, want %q", called, "scene convert")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "intro.yaml" {
		t.Errorf("args = %v, want [intro.yaml]", receivedArgs)
	}
}

func TestCommand_Execute_RunWithUnmatchedPositional(t *testing.T) {
	var receivedArgs []string
	command := &Command{
		Name:        "digest",
		Subcommands: []*Command{{Name: "verify"}},
		Run: func(args []string) error {
			receivedArgs = args
			return nil
		},
	}

	if err := command.Execute([]string{"movie.swf"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "movie.swf" {
		t.Errorf("args = %v, want [movie.swf]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var output string
	var target string

	command := &Command{
		Name: "build",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("build", pflag.ContinueOnError)
			flagSet.StringVarP(&output, "output", "o", "", "output path")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"-o", "out.swf", "intro.yaml"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if output != "out.swf" {
		t.Errorf("output = %q, want %q", output, "out.swf")
	}
	if target != "intro.yaml" {
		t.Errorf("target = %q, want %q", target, "intro.yaml")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "build",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("build", pflag.ContinueOnError)
			flagSet.Bool("compress", false, "compress output")
			flagSet.String("output", "", "output path")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--compres"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --compress") {
		t.Errorf("error = %q, want suggestion for '--compress'", errStr)
	}
	if !strings.Contains(errStr, "compres") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "build",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("build", pflag.ContinueOnError)
			flagSet.Bool("compress", false, "compress output")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "swfpack",
		Subcommands: []*Command{
			{Name: "build"},
			{Name: "digest"},
			{Name: "version"},
		},
	}

	err := root.Execute([]string{"biuld"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"build\"") {
		t.Errorf("error = %q, want suggestion for 'build'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "swfpack",
		Subcommands: []*Command{
			{Name: "build"},
			{Name: "digest"},
		},
	}

	err := root.Execute([]string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			var buffer bytes.Buffer
			root := &Command{
				Name:       "swfpack",
				Summary:    "Build SWF movies from scene descriptions",
				HelpOutput: &buffer,
				Subcommands: []*Command{
					{Name: "build", Summary: "Build a movie"},
				},
			}

			if err := root.Execute([]string{helpArg}); err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
			if !strings.Contains(buffer.String(), "Build a movie") {
				t.Errorf("help not written to HelpOutput:\n%s", buffer.String())
			}
		})
	}
}

func TestCommand_Execute_SubcommandInheritsHelpOutput(t *testing.T) {
	var buffer bytes.Buffer
	root := &Command{
		Name:       "swfpack",
		HelpOutput: &buffer,
		Subcommands: []*Command{
			{Name: "digest", Summary: "Print movie digests", Run: func([]string) error { return nil }},
		},
	}

	if err := root.Execute([]string{"digest", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(buffer.String(), "swfpack digest [flags]") {
		t.Errorf("subcommand help missing usage line:\n%s", buffer.String())
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name:       "swfpack",
		HelpOutput: io.Discard,
		Subcommands: []*Command{
			{Name: "build", Summary: "Build a movie"},
		},
	}

	err := root.Execute([]string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "swfpack",
		Description: "Build SWF movies from scene descriptions.",
		Subcommands: []*Command{
			{Name: "build", Summary: "Build movies from scenes"},
			{Name: "digest", Summary: "Print movie digests"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Build a compressed movie",
				Command:     "swfpack build --compress intro.yaml",
			},
			{
				Description: "Print the digest of a movie",
				Command:     "swfpack digest intro.swf",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Build SWF movies from scene descriptions.",
		"Usage:",
		"swfpack <command> [flags]",
		"Commands:",
		"build",
		"Build movies from scenes",
		"digest",
		"Print movie digests",
		"Examples:",
		"# Build a compressed movie",
		"swfpack build --compress intro.yaml",
		"Run 'swfpack <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "build",
		Summary: "Build movies from scenes",
		Usage:   "swfpack build <scene>... [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("build", pflag.ContinueOnError)
			flagSet.StringP("output", "o", "", "output path")
			flagSet.Bool("compress", false, "compress output")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"swfpack build <scene>... [flags]",
		"Flags:",
		"-o, --output",
		"--compress",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "swfpack"}
	scene := &Command{Name: "scene", parent: root}
	convert := &Command{Name: "convert", parent: scene}

	if got := root.fullName(); got != "swfpack" {
		t.Errorf("root.fullName() = %q, want %q", got, "swfpack")
	}
	if got := scene.fullName(); got != "swfpack scene" {
		t.Errorf("scene.fullName() = %q, want %q", got, "swfpack scene")
	}
	if got := convert.fullName(); got != "swfpack scene convert" {
		t.Errorf("convert.fullName() = %q, want %q", got, "swfpack scene convert")
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 3}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok {
		t.Fatal("ExitError should expose ExitCode")
	}
	if coder.ExitCode() != 3 {
		t.Errorf("ExitCode() = %d, want 3", coder.ExitCode())
	}
	if err.Error() != "exit code 3" {
		t.Errorf("Error() = %q", err.Error())
	}
}
