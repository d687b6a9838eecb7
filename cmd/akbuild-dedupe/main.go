// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Command akbuild-dedupe removes duplicate object files from a
// simulator fat static library:
//
//	akbuild-dedupe <fat-library>
//
// It takes no flags and reads no configuration. Libraries whose path
// does not name a simulator SDK are left alone.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/akbuild/akbuild/cmd/akbuild/cli"
	"github.com/akbuild/akbuild/lib/archive"
	"github.com/akbuild/akbuild/lib/dedupe"
	"github.com/akbuild/akbuild/lib/process"
	"github.com/akbuild/akbuild/lib/toolexec"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	logger := cli.NewCommandLogger(false)
	err := run(ctx, os.Args[1:], os.Stdout, toolexec.NewExecRunner(logger), logger)
	stop()
	process.Exit(err)
}

func run(ctx context.Context, args []string, stdout io.Writer, runner toolexec.Runner, logger *slog.Logger) error {
	if len(args) > 1 {
		return &dedupe.UsageError{Message: fmt.Sprintf("expected one library path, got %d arguments", len(args))}
	}
	var library string
	if len(args) == 1 {
		library = args[0]
	}

	deduplicator := &dedupe.Deduplicator{
		Archiver: archive.NewToolchain(runner),
		Marker:   dedupe.DefaultMarker,
		Logger:   logger,
	}
	result, err := deduplicator.Run(ctx, library)
	if err != nil {
		return err
	}

	if result.Skipped {
		fmt.Fprintf(stdout, "%s: %s, nothing to do\n", library, result.Reason)
		return nil
	}
	for _, slice := range result.Slices {
		fmt.Fprintf(stdout, "%s: removed %d of %d members\n", slice.Architecture, len(slice.Removed), slice.Members)
	}
	return nil
}
