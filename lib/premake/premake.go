// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package premake generates native project files (Visual Studio
// solutions, Xcode projects, makefiles) from the integration's
// premake5.lua description.
package premake

import (
	"context"

	"github.com/akbuild/akbuild/lib/toolexec"
)

// Target is the premake --os value and generator action for one
// platform.
type Target struct {
	OS        string
	Generator string
}

// Command is one premake invocation.
type Command struct {
	// Executable is the premake5 binary.
	Executable string

	// Scripts is the directory passed as --scripts.
	Scripts string

	// File is the premake5.lua project description.
	File string

	Target Target

	// Env is added to the process environment.
	Env []string
}

// Invocation returns the premake command line.
func (c Command) Invocation() toolexec.Invocation {
	return toolexec.Invocation{
		Name: c.Executable,
		Args: []string{
			"--scripts=" + c.Scripts,
			"--os=" + c.Target.OS,
			"--file=" + c.File,
			c.Target.Generator,
		},
		Env: c.Env,
	}
}

// Run generates the project files.
func (c Command) Run(ctx context.Context, runner toolexec.Runner) error {
	_, err := runner.Run(ctx, c.Invocation())
	return err
}
