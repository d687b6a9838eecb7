// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package toolexec

import (
	"fmt"
	"strings"
)

// ToolInvocationError reports an external tool that failed to run,
// exited non-zero, or produced output its caller could not parse.
type ToolInvocationError struct {
	// Tool is the executable that was invoked.
	Tool string

	// Args are the arguments passed to the tool.
	Args []string

	// ExitCode is the process exit status, or -1 if the process never
	// ran or was killed. Zero for parse failures on successful runs.
	ExitCode int

	// Stderr is the trimmed standard error of the run, if any.
	Stderr string

	// Err is the underlying cause.
	Err error
}

func (e *ToolInvocationError) Error() string {
	var builder strings.Builder
	builder.WriteString(e.Tool)
	if len(e.Args) > 0 {
		builder.WriteString(" ")
		builder.WriteString(strings.Join(e.Args, " "))
	}
	fmt.Fprintf(&builder, ": %v", e.Err)
	if e.Stderr != "" {
		fmt.Fprintf(&builder, " (stderr: %s)", e.Stderr)
	}
	return builder.String()
}

func (e *ToolInvocationError) Unwrap() error { return e.Err }

// Unparsable returns a ToolInvocationError for a run that succeeded but
// whose output could not be interpreted.
func Unparsable(invocation Invocation, format string, args ...any) *ToolInvocationError {
	return &ToolInvocationError{
		Tool: invocation.Name,
		Args: invocation.Args,
		Err:  fmt.Errorf(format, args...),
	}
}
