// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is implemented by errors that carry their own exit code
// and have already reported themselves.
type exitCoder interface {
	ExitCode() int
}

// Fatal writes "error: err" to stderr and exits with code 1.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// Exit terminates the process for the result of run. A nil error
// exits 0. An error with an ExitCode method exits with that code
// silently. Any other error is written to stderr and exits 1.
func Exit(err error) {
	os.Exit(Report(os.Stderr, err))
}

// Report writes err to w unless it carries its own exit code, and
// returns the exit code for err.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
