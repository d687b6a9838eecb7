// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers for akbuild
// binaries: reporting a fatal error to stderr when the structured
// logger may not exist, and mapping a run error to a process exit
// code.
package process
