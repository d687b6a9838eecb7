// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build version of akbuild binaries.
//
// Values are injected at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/akbuild/akbuild/lib/version.GitCommit=$(git rev-parse --short HEAD)"
package version
