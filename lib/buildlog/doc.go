// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package buildlog sets up logging for build runs. A build logs to two
// places at once: the console, at info level (debug with verbose), and
// a JSON log file in the configured log directory that always records
// debug output, including the stdout and stderr of every tool.
//
// When a run opens its log file, the previous run's log is compressed
// with zstd to akbuild.log.1.zst, replacing any older archive. Passing
// DeleteLogs removes the log directory first.
package buildlog
