// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package dedupe

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/akbuild/akbuild/lib/archive"
)

// DefaultMarker is the path substring that identifies a simulator
// build product. Libraries without it need no deduplication.
const DefaultMarker = "simulator"

// Reasons recorded in [Result.Reason] for skipped runs.
const (
	ReasonNotSimulator       = "not a simulator library"
	ReasonSingleArchitecture = "single-architecture library"
)

// Archiver is the set of archive operations a run needs.
// *archive.Toolchain satisfies it.
type Archiver interface {
	ListArchitectures(ctx context.Context, path string) ([]string, error)
	ExtractSlice(ctx context.Context, path, architecture, destinationDir string) (archive.Slice, error)
	ListMembers(ctx context.Context, path string) ([]string, error)
	RemoveMembers(ctx context.Context, path string, names map[string]struct{}) error
	Assemble(ctx context.Context, slicePaths []string, outputPath string) error
}

// UsageError reports a missing or invalid library argument.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// Deduplicator removes duplicate members from the slices of a fat
// library.
type Deduplicator struct {
	Archiver Archiver

	// Marker is the path substring that enables deduplication. Empty
	// means DefaultMarker.
	Marker string

	// ScratchRoot holds the per-architecture slice directories. Empty
	// means a fresh temporary directory, removed after a successful
	// run. A caller-supplied root is never removed.
	ScratchRoot string

	Logger *slog.Logger
}

// Result describes one run.
type Result struct {
	Library string `json:"library"`

	// Skipped is true when nothing was done: the library is not a
	// simulator product, or it holds a single architecture. Reason
	// says which.
	Skipped bool   `json:"skipped"`
	Reason  string `json:"reason,omitempty"`

	Slices []SliceResult `json:"slices"`

	// DigestBefore and DigestAfter are BLAKE3 digests of the library
	// file before and after the run. Both are empty for skipped runs.
	DigestBefore string `json:"digest_before,omitempty"`
	DigestAfter  string `json:"digest_after,omitempty"`
}

// SliceResult describes the cleanup of one architecture slice.
type SliceResult struct {
	Architecture string   `json:"architecture"`
	Members      int      `json:"members"`
	Removed      []string `json:"removed"`
}

// Changed reports whether the library content differs after the run.
func (r *Result) Changed() bool {
	return !r.Skipped && r.DigestBefore != r.DigestAfter
}

// Run deduplicates the fat library at libraryPath in place. Any
// failure aborts the run; slices already cleaned are not reassembled
// and the scratch directory is left behind.
func (d *Deduplicator) Run(ctx context.Context, libraryPath string) (*Result, error) {
	if libraryPath == "" {
		return nil, &UsageError{Message: "please specify the library to strip as the first argument"}
	}

	logger := d.logger()
	libraryName := filepath.Base(libraryPath)
	libraryDir := filepath.Dir(libraryPath)
	result := &Result{Library: libraryPath}

	if !strings.Contains(libraryPath, d.marker()) {
		logger.Info("no need to remove duplicate symbols on non-simulator targets", "library", libraryPath)
		result.Skipped = true
		result.Reason = ReasonNotSimulator
		return result, nil
	}

	architectures, err := d.Archiver.ListArchitectures(ctx, libraryPath)
	if err != nil {
		return nil, err
	}
	// lipo cannot thin a single-architecture file, and there is no
	// second slice to collide with.
	if len(architectures) < 2 {
		logger.Info("no need to remove duplicate symbols on single-architecture libraries",
			"library", libraryPath, "architectures", architectures)
		result.Skipped = true
		result.Reason = ReasonSingleArchitecture
		return result, nil
	}

	logger.Info("removing duplicate symbols", "library", libraryName, "path", libraryDir)

	digest, err := digestFile(libraryPath)
	if err != nil {
		return nil, err
	}
	result.DigestBefore = digest

	scratchRoot, cleanup, err := d.scratch()
	if err != nil {
		return nil, err
	}

	slicePaths := make([]string, 0, len(architectures))
	for _, architecture := range architectures {
		slice, err := d.Archiver.ExtractSlice(ctx, libraryPath, architecture, filepath.Join(scratchRoot, architecture))
		if err != nil {
			return nil, err
		}

		members, err := d.Archiver.ListMembers(ctx, slice.Path)
		if err != nil {
			return nil, err
		}

		duplicates := FindDuplicates(members)
		if err := d.Archiver.RemoveMembers(ctx, slice.Path, duplicates); err != nil {
			return nil, err
		}

		removed := sortedNames(duplicates)
		logger.Info("cleaned slice",
			"architecture", architecture,
			"members", len(members),
			"removed", len(removed),
		)
		logger.Debug("removed members", "architecture", architecture, "names", removed)

		result.Slices = append(result.Slices, SliceResult{
			Architecture: architecture,
			Members:      len(members),
			Removed:      removed,
		})
		slicePaths = append(slicePaths, slice.Path)
	}

	if err := d.Archiver.Assemble(ctx, slicePaths, libraryPath); err != nil {
		return nil, err
	}

	digest, err = digestFile(libraryPath)
	if err != nil {
		return nil, err
	}
	result.DigestAfter = digest

	cleanup()
	return result, nil
}

func (d *Deduplicator) marker() string {
	if d.Marker == "" {
		return DefaultMarker
	}
	return d.Marker
}

func (d *Deduplicator) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// scratch returns the scratch root and a cleanup function to call after
// a successful run.
func (d *Deduplicator) scratch() (string, func(), error) {
	if d.ScratchRoot != "" {
		if err := os.MkdirAll(d.ScratchRoot, 0o755); err != nil {
			return "", nil, fmt.Errorf("creating scratch directory: %w", err)
		}
		return d.ScratchRoot, func() {}, nil
	}

	root, err := os.MkdirTemp("", "akbuild-dedupe-")
	if err != nil {
		return "", nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	return root, func() {
		if err := os.RemoveAll(root); err != nil {
			d.logger().Warn("removing scratch directory failed", "path", root, "error", err)
		}
	}, nil
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// digestFile returns the hex BLAKE3 digest of the file at path.
func digestFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading library: %w", err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
