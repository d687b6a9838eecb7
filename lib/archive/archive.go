// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akbuild/akbuild/lib/toolexec"
)

// Slice is a thin, single-architecture archive extracted from a fat
// library.
type Slice struct {
	Architecture string
	Path         string
}

// Toolchain runs archive operations through a toolexec.Runner. The
// tool fields hold executable names or paths; empty fields fall back
// to "lipo", "ar" and "libtool".
type Toolchain struct {
	Runner  toolexec.Runner
	Lipo    string
	Ar      string
	Libtool string
}

// NewToolchain returns a Toolchain using the default tool names.
func NewToolchain(runner toolexec.Runner) *Toolchain {
	return &Toolchain{Runner: runner}
}

// ListArchitectures returns the architecture names of the slices in
// the library at path, in the order lipo reports them. A thin file is
// reported as its single architecture; lipo cannot extract a slice
// from it.
func (t *Toolchain) ListArchitectures(ctx context.Context, path string) ([]string, error) {
	invocation := toolexec.Invocation{Name: t.lipo(), Args: []string{path, "-info"}}
	output, err := t.Runner.Run(ctx, invocation)
	if err != nil {
		return nil, err
	}

	// Fat:  "Architectures in the fat file: lib.a are: x86_64 arm64"
	// Thin: "Non-fat file: lib.a is architecture: arm64"
	stdout := output.Stdout
	index := strings.LastIndex(stdout, ": ")
	if index < 0 {
		return nil, toolexec.Unparsable(invocation, "no architecture list in output %q", strings.TrimSpace(stdout))
	}
	architectures := strings.Fields(stdout[index+2:])
	if len(architectures) == 0 {
		return nil, toolexec.Unparsable(invocation, "empty architecture list in output %q", strings.TrimSpace(stdout))
	}
	return architectures, nil
}

// ExtractSlice writes the architecture slice of the fat library at
// path into destinationDir, creating the directory if needed. The thin
// archive keeps the fat library's base name. A failed extraction may
// leave destinationDir partially written.
func (t *Toolchain) ExtractSlice(ctx context.Context, path, architecture, destinationDir string) (Slice, error) {
	if err := os.MkdirAll(destinationDir, 0o755); err != nil {
		return Slice{}, fmt.Errorf("creating slice directory %s: %w", destinationDir, err)
	}

	output := filepath.Join(destinationDir, filepath.Base(path))
	invocation := toolexec.Invocation{
		Name: t.lipo(),
		Args: []string{path, "-thin", architecture, "-output", output},
	}
	if _, err := t.Runner.Run(ctx, invocation); err != nil {
		return Slice{}, err
	}
	return Slice{Architecture: architecture, Path: output}, nil
}

// ListMembers returns the member names of the thin archive at path in
// the archive's own order. The trailing newline of ar's listing is
// dropped; blank lines inside the listing are kept as empty names.
func (t *Toolchain) ListMembers(ctx context.Context, path string) ([]string, error) {
	output, err := t.Runner.Run(ctx, toolexec.Invocation{Name: t.ar(), Args: []string{"t", path}})
	if err != nil {
		return nil, err
	}

	listing := strings.TrimRight(output.Stdout, "\r\n")
	if listing == "" {
		return nil, nil
	}
	members := strings.Split(listing, "\n")
	for i, member := range members {
		members[i] = strings.TrimSuffix(member, "\r")
	}
	return members, nil
}

// RemoveMembers deletes the named members from the archive at path in
// a single "ar d" run. Names are passed in sorted order. An empty set
// runs nothing. A member that is not present fails the whole call like
// any other ar error.
func (t *Toolchain) RemoveMembers(ctx context.Context, path string, names map[string]struct{}) error {
	if len(names) == 0 {
		return nil
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	args := append([]string{"d", path}, sorted...)
	_, err := t.Runner.Run(ctx, toolexec.Invocation{Name: t.ar(), Args: args})
	return err
}

// Assemble merges the thin archives at slicePaths, in order, into a
// new fat library at outputPath, overwriting it. There is no atomic
// replace: if libtool fails, the state of outputPath is undefined.
func (t *Toolchain) Assemble(ctx context.Context, slicePaths []string, outputPath string) error {
	if len(slicePaths) == 0 {
		return fmt.Errorf("assembling %s: no slices given", outputPath)
	}
	args := append([]string{"-o", outputPath, "-static"}, slicePaths...)
	_, err := t.Runner.Run(ctx, toolexec.Invocation{Name: t.libtool(), Args: args})
	return err
}

func (t *Toolchain) lipo() string    { return orDefault(t.Lipo, "lipo") }
func (t *Toolchain) ar() string      { return orDefault(t.Ar, "ar") }
func (t *Toolchain) libtool() string { return orDefault(t.Libtool, "libtool") }

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
