// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the akbuild command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	buildcmd "github.com/akbuild/akbuild/cmd/akbuild/build"
	"github.com/akbuild/akbuild/cmd/akbuild/cli"
	dedupecmd "github.com/akbuild/akbuild/cmd/akbuild/dedupe"
	"github.com/akbuild/akbuild/lib/version"
)

// Root builds and returns the complete akbuild command tree.
func Root() *cli.Command {
	return root(os.Stdout)
}

func root(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name: "akbuild",
		Description: `akbuild: build toolkit for the Wwise Unity Integration.

Builds the native sound engine plugin for every supported platform,
regenerates its C# API binding and cleans simulator static libraries
of duplicate object files.`,
		Subcommands: []*cli.Command{
			buildcmd.Command(),
			buildcmd.BindingCommand(),
			dedupecmd.Command(),
			versionCommand(stdout),
		},
		Examples: []cli.Example{
			{
				Description: "Build every platform this host supports",
				Command:     "akbuild build -w /path/to/Wwise/SDK",
			},
			{
				Description: "Build iOS Debug and regenerate its binding",
				Command:     "akbuild build -p iOS -c Debug -g",
			},
			{
				Description: "Remove duplicate objects from a simulator library",
				Command:     "akbuild dedupe build/Debug-iphonesimulator/libAkUnitySoundEngine.a",
			},
		},
	}
}

func versionCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("version takes no arguments")
			}
			fmt.Fprintf(stdout, "akbuild %s\n", version.Full())
			return nil
		},
	}
}
