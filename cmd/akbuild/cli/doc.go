// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the akbuild CLI.
//
// The central type is [Command], a named command with optional nested
// [Command.Subcommands], a [pflag.FlagSet] factory and a Run function.
// Commands are assembled into a tree by cmd/akbuild/commands and
// dispatched with [Command.Execute], which handles flag parsing,
// subcommand routing and structured help output with examples.
//
// Parameter structs declare flags with struct tags and are bound with
// [FlagsFromParams]. Unknown subcommands and flags get a Levenshtein
// suggestion (distance at most 3).
//
// Errors returned by commands are classified with [ToolError]
// categories; [ExitError] carries an exit code for commands that have
// already reported their own outcome.
package cli
