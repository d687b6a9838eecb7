// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for akbuild.
//
// Configuration is loaded from a single file specified by either the
// AKBUILD_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). Without a file, [ForRoot] derives every path from
// the integration source root. There is no other discovery.
//
// Path fields may reference ${AKBUILD_ROOT}, ${HOME} and
// ${VAR:-default}; they are expanded after loading, with
// ${AKBUILD_ROOT} bound to the configured root. The defaults are
// written in terms of ${AKBUILD_ROOT}, so a file that only sets
// paths.root moves every derived path with it.
//
// Key exports:
//
//   - [Config] -- master struct with Paths, Tools, Dedupe
//   - [Default] -- a Config with every path relative to ${AKBUILD_ROOT}
//   - [Load], [LoadFile], [ForRoot] -- the entry points for loading
//
// This package depends on no other akbuild packages.
package config
