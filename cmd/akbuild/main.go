// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Command akbuild builds the Wwise Unity Integration native plugin.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/akbuild/akbuild/cmd/akbuild/commands"
	"github.com/akbuild/akbuild/lib/process"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Root().Execute(ctx, os.Args[1:])
	stop()
	process.Exit(err)
}
