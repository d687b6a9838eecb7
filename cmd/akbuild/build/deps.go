// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/akbuild/akbuild/cmd/akbuild/cli"
	"github.com/akbuild/akbuild/lib/toolexec"
)

// deps are the process-facing pieces, swapped out in tests.
type deps struct {
	stdout    io.Writer
	console   io.Writer
	goos      string
	lookupEnv func(string) (string, bool)
	newRunner func(logger *slog.Logger) toolexec.Runner
	newLogger func(verbose bool) *slog.Logger
}

func defaultDeps() deps {
	return deps{
		stdout:    os.Stdout,
		console:   os.Stderr,
		goos:      runtime.GOOS,
		lookupEnv: os.LookupEnv,
		newRunner: func(logger *slog.Logger) toolexec.Runner { return toolexec.NewExecRunner(logger) },
		newLogger: cli.NewCommandLogger,
	}
}
