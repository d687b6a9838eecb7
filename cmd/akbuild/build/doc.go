// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package build implements "akbuild build" and "akbuild binding".
//
// build validates the platform, architecture and configuration
// choices against the host, resolves the SDK locations (command line,
// then preference file, then environment), opens the build log and
// runs every platform builder. The exit code is 0 only when every
// build tuple succeeded.
//
// binding generates the C# API binding of one platform without
// building it.
package build
