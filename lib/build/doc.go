// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package build drives native builds of the sound engine plugin for
// every supported platform.
//
// The platform set is closed: [Platform] enumerates it and [Lookup]
// returns each platform's fixed [Spec] (builder kind, premake target,
// architectures, Apple SDKs, SWIG target). [NewBuilder] selects the
// builder for a platform with a switch over the spec's [Kind].
//
// A builder generates project files with premake, optionally generates
// the C# API binding, then runs a command list per (architecture,
// configuration) tuple. A failing command marks its tuple failed
// without stopping the run. Simulator builds on Apple device platforms
// feed their product library through the duplicate object remover.
//
// Tool environments are explicit: every builder carries an [Env] that
// is passed to each command it runs. Nothing here mutates the process
// environment.
package build
