// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package toolexec

import (
	"context"
	"fmt"
	"sync"
)

// Recorder is a Runner that records invocations and answers them with
// Handler instead of starting processes. A nil Handler answers every
// invocation with empty, successful output.
type Recorder struct {
	Handler func(invocation Invocation) (Output, error)

	mutex       sync.Mutex
	invocations []Invocation
}

// Run records the invocation and delegates to Handler.
func (r *Recorder) Run(ctx context.Context, invocation Invocation) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	r.mutex.Lock()
	r.invocations = append(r.invocations, invocation)
	r.mutex.Unlock()

	if r.Handler == nil {
		return Output{}, nil
	}
	return r.Handler(invocation)
}

// Invocations returns a copy of every recorded invocation in order.
func (r *Recorder) Invocations() []Invocation {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]Invocation(nil), r.invocations...)
}

// Commands returns the recorded invocations rendered as command lines.
func (r *Recorder) Commands() []string {
	invocations := r.Invocations()
	commands := make([]string, len(invocations))
	for i, invocation := range invocations {
		commands[i] = invocation.String()
	}
	return commands
}

// Failure builds the error a real runner returns when invocation exits
// with exitCode. For use in Recorder handlers.
func Failure(invocation Invocation, exitCode int, stderr string) error {
	return &ToolInvocationError{
		Tool:     invocation.Name,
		Args:     invocation.Args,
		ExitCode: exitCode,
		Stderr:   stderr,
		Err:      fmt.Errorf("exit status %d", exitCode),
	}
}

