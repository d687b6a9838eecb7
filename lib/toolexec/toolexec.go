// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package toolexec

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Invocation describes one external tool run.
type Invocation struct {
	// Name is the executable, either a bare name resolved on PATH or an
	// absolute path.
	Name string

	// Args are the arguments after the executable name.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env holds KEY=VALUE pairs added on top of the inherited process
	// environment. Later entries win over earlier ones and over the
	// inherited values.
	Env []string
}

// String renders the invocation as an on-screen command line.
func (i Invocation) String() string {
	return strings.Join(append([]string{i.Name}, i.Args...), " ")
}

// Output is the captured result of a successful invocation.
type Output struct {
	Stdout string
	Stderr string
}

// Runner executes invocations. Implementations return a
// [*ToolInvocationError] when the tool cannot be started or exits
// non-zero.
type Runner interface {
	Run(ctx context.Context, invocation Invocation) (Output, error)
}

// ExecRunner runs invocations as child processes via os/exec.
type ExecRunner struct {
	// Logger receives the command line before each run and the captured
	// output after it, both at debug level. Nil disables logging.
	Logger *slog.Logger
}

// NewExecRunner returns an ExecRunner that logs to logger.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	return &ExecRunner{Logger: logger}
}

// Run executes the invocation and returns its stdout and stderr.
func (r *ExecRunner) Run(ctx context.Context, invocation Invocation) (Output, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, invocation.Name, invocation.Args...)
	command.Dir = invocation.Dir
	command.Stdout = &stdout
	command.Stderr = &stderr
	if len(invocation.Env) > 0 {
		command.Env = append(os.Environ(), invocation.Env...)
	}

	if r.Logger != nil {
		r.Logger.Debug("running tool", "command", invocation.String(), "dir", invocation.Dir)
	}

	err := command.Run()

	if r.Logger != nil {
		r.Logger.Debug("tool finished",
			"tool", invocation.Name,
			"stdout", stdout.String(),
			"stderr", stderr.String(),
		)
	}

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return Output{}, &ToolInvocationError{
			Tool:     invocation.Name,
			Args:     invocation.Args,
			ExitCode: exitCode,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}

	return Output{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// LookPath resolves name on PATH and falls back to the given candidate
// paths in order. Returns the first path that exists.
func LookPath(name string, fallbacks ...string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	for _, candidate := range fallbacks {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", &ToolInvocationError{
		Tool: name,
		Err:  exec.ErrNotFound,
	}
}
