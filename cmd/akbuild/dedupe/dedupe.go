// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package dedupe implements "akbuild dedupe": removing duplicate
// object files from a simulator fat static library.
package dedupe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/akbuild/akbuild/cmd/akbuild/cli"
	"github.com/akbuild/akbuild/lib/archive"
	"github.com/akbuild/akbuild/lib/config"
	libdedupe "github.com/akbuild/akbuild/lib/dedupe"
	"github.com/akbuild/akbuild/lib/toolexec"
)

type dedupeParams struct {
	cli.JSONOutput
	Verbose    bool   `json:"-" flag:"verbose,V" desc:"log every tool invocation"`
	ConfigPath string `json:"-" flag:"config" desc:"akbuild.yaml config file (default: $AKBUILD_CONFIG)"`
}

// deps are the process-facing pieces, swapped out in tests.
type deps struct {
	stdout    io.Writer
	newRunner func(logger *slog.Logger) toolexec.Runner
	newLogger func(verbose bool) *slog.Logger
}

func defaultDeps() deps {
	return deps{
		stdout:    os.Stdout,
		newRunner: func(logger *slog.Logger) toolexec.Runner { return toolexec.NewExecRunner(logger) },
		newLogger: cli.NewCommandLogger,
	}
}

// Command returns the "dedupe" command.
func Command() *cli.Command {
	return command(defaultDeps())
}

func command(d deps) *cli.Command {
	var params dedupeParams
	return &cli.Command{
		Name:    "dedupe",
		Summary: "Remove duplicate object files from a simulator static library",
		Description: `Remove duplicate object files from a fat static library built for a
simulator SDK.

Each architecture slice is extracted, members that repeat a shorter
member's name with a different final character are deleted, and the
slices are reassembled in place. Libraries whose path does not contain
the simulator marker are left untouched.`,
		Usage: "akbuild dedupe <library> [flags]",
		Examples: []cli.Example{
			{
				Description: "Clean a simulator build product",
				Command:     "akbuild dedupe build/Debug-iphonesimulator/libAkUnitySoundEngine.a",
			},
			{
				Description: "Report removed members as JSON",
				Command:     "akbuild dedupe --json build/Release-xrsimulator/libAkUnitySoundEngine.a",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("dedupe", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one library path, got %d arguments\n\nUsage: akbuild dedupe <library>", len(args))
			}
			return run(ctx, d, &params, args[0])
		},
	}
}

func run(ctx context.Context, d deps, params *dedupeParams, library string) error {
	cfg, err := config.Discover(params.ConfigPath)
	if err != nil {
		return cli.Classify(fmt.Errorf("loading configuration: %w", err))
	}

	logger := d.newLogger(params.Verbose).With("command", "dedupe")
	toolchain := archive.NewToolchain(d.newRunner(logger))
	toolchain.Lipo = cfg.Tools.Lipo
	toolchain.Ar = cfg.Tools.Ar
	toolchain.Libtool = cfg.Tools.Libtool

	deduplicator := &libdedupe.Deduplicator{
		Archiver:    toolchain,
		Marker:      cfg.Dedupe.Marker,
		ScratchRoot: cfg.Dedupe.ScratchRoot,
		Logger:      logger,
	}

	result, err := deduplicator.Run(ctx, library)
	if err != nil {
		var usage *libdedupe.UsageError
		if errors.As(err, &usage) {
			return cli.Validation("%s", usage.Message)
		}
		return cli.Classify(err)
	}

	if done, err := params.EmitJSON(d.stdout, result); done {
		return err
	}

	if result.Skipped {
		fmt.Fprintf(d.stdout, "%s: %s, skipped\n", library, result.Reason)
		return nil
	}
	for _, slice := range result.Slices {
		fmt.Fprintf(d.stdout, "%s [%s]: %d members, removed %d\n", library, slice.Architecture, slice.Members, len(slice.Removed))
		for _, name := range slice.Removed {
			fmt.Fprintf(d.stdout, "  - %s\n", name)
		}
	}
	if !result.Changed() {
		fmt.Fprintf(d.stdout, "%s: already clean\n", library)
	}
	return nil
}
