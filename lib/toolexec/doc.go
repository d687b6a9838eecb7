// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package toolexec runs the external build tools akbuild drives (lipo,
// ar, libtool, xcodebuild, MSBuild, swig, premake) behind a single
// [Runner] interface.
//
// Every invocation is described by an [Invocation] value that carries
// its own environment. Nothing in akbuild mutates the process-wide
// environment to pass toolchain settings to a child: callers build the
// environment explicitly and hand it to the runner.
//
// A failed invocation is reported as a [*ToolInvocationError], which
// records the tool, its arguments, the exit code and the captured
// stderr. The same error type is used by parsers in other packages
// when a tool exits zero but prints output that cannot be understood.
//
// [Recorder] is a scripted Runner for tests. It records every
// invocation and answers from a list of canned responses, so packages
// that shell out can be tested without the tools installed.
package toolexec
