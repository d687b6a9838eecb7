// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package swig generates the C# API binding for the sound engine by
// running SWIG over the SDK headers.
//
// A [Request] names the [Target] (compiler variant, defines, word size,
// Apple SDK) and the [Paths] involved. [Generator.Generate] locates
// swig, queries its library directory, assembles the command line in
// a fixed order and runs it. On Apple targets the platform SDK include
// directory is discovered from SDKROOT or, when that is unset, from
// the active Xcode developer directory.
package swig
