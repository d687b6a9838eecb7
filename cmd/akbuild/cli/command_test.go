// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "akbuild",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(_ context.Context, args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "dedupe",
				Run: func(_ context.Context, args []string) error {
					called = "dedupe"
					receivedArgs = args
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"dedupe", "libFoo.a"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "dedupe" {
		t.Errorf("dispatched to %q, want %q", called, "dedupe")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "libFoo.a" {
		t.Errorf("args = %v, want [libFoo.a]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var platforms []string
	var verbose bool

	command := &Command{
		Name: "build",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("build", pflag.ContinueOnError)
			flagSet.StringSliceVarP(&platforms, "platforms", "p", nil, "platforms")
			flagSet.BoolVarP(&verbose, "verbose", "V", false, "verbose")
			return flagSet
		},
		Run: func(_ context.Context, args []string) error { return nil },
	}

	if err := command.Execute(context.Background(), []string{"-p", "iOS,tvOS", "-V"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(platforms) != 2 || platforms[1] != "tvOS" || !verbose {
		t.Errorf("platforms = %v, verbose = %v", platforms, verbose)
	}
}

func TestCommand_Execute_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")

	var got any
	root := &Command{
		Name: "akbuild",
		Subcommands: []*Command{{
			Name: "version",
			Run: func(ctx context.Context, _ []string) error {
				got = ctx.Value(key{})
				return nil
			},
		}},
	}
	if err := root.Execute(ctx, []string{"version"}); err != nil {
		t.Fatal(err)
	}
	if got != "marker" {
		t.Errorf("context value = %v", got)
	}
}

func TestCommand_Execute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name:        "akbuild",
		Output:      &bytes.Buffer{},
		Subcommands: []*Command{{Name: "dedupe"}, {Name: "build"}},
	}

	err := root.Execute(context.Background(), []string{"dedup"})
	if err == nil || !strings.Contains(err.Error(), `did you mean "dedupe"`) {
		t.Fatalf("error = %v, want suggestion", err)
	}
	var toolError *ToolError
	if !errors.As(err, &toolError) || toolError.Category != CategoryValidation {
		t.Errorf("error category = %v, want validation", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	var skip bool
	command := &Command{
		Name: "build",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("build", pflag.ContinueOnError)
			flagSet.BoolVar(&skip, "skip-premake", false, "skip")
			return flagSet
		},
		Run: func(context.Context, []string) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--skip-premak"})
	if err == nil || !strings.Contains(err.Error(), "did you mean --skip-premake?") {
		t.Fatalf("error = %v, want suggestion", err)
	}
}

func TestCommand_Execute_Help(t *testing.T) {
	var output bytes.Buffer
	ran := false
	root := &Command{
		Name:   "akbuild",
		Output: &output,
		Subcommands: []*Command{{
			Name:        "dedupe",
			Summary:     "Remove duplicate objects from a simulator library",
			Description: "Remove duplicate objects.",
			Usage:       "akbuild dedupe <library>",
			Examples:    []Example{{Description: "Clean a library", Command: "akbuild dedupe libFoo.a"}},
			Run: func(context.Context, []string) error {
				ran = true
				return nil
			},
		}},
	}

	if err := root.Execute(context.Background(), []string{"dedupe", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if ran {
		t.Error("Run called for --help")
	}
	for _, want := range []string{"Usage:\n  akbuild dedupe <library>", "# Clean a library", "akbuild dedupe libFoo.a"} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("help missing %q:\n%s", want, output.String())
		}
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{Name: "akbuild", Output: &bytes.Buffer{}, Subcommands: []*Command{{Name: "build"}}}
	if err := root.Execute(context.Background(), nil); err == nil {
		t.Fatal("expected an error without a subcommand")
	}
}

func TestCommand_PrintHelp_ListsSubcommands(t *testing.T) {
	root := &Command{
		Name: "akbuild",
		Subcommands: []*Command{
			{Name: "build", Summary: "Build the plugin"},
			{Name: "version", Summary: "Print version"},
		},
	}
	var output bytes.Buffer
	root.PrintHelp(&output)
	for _, want := range []string{"Commands:", "build", "Build the plugin", "Run 'akbuild <command> --help'"} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("help missing %q:\n%s", want, output.String())
		}
	}
}
