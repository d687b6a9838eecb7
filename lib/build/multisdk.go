// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/akbuild/akbuild/lib/swig"
)

// buildEachSDK builds once per toolchain version listed in the
// platform's version file. Without a version file or toolchain script
// it falls back to a single build.
func (b *PlatformBuilder) buildEachSDK(ctx context.Context) ([]Result, error) {
	platform := string(b.spec.Platform)
	toolchainDir := b.tools.Config.ToolchainDir(platform)

	versions, err := readToolchainVersions(filepath.Join(toolchainDir, b.settings.ToolchainVersFilename))
	if err == nil {
		_, err = os.Stat(filepath.Join(toolchainDir, toolchainScript))
	}
	if errors.Is(err, fs.ErrNotExist) {
		b.logger.Info("no toolchain specified, using the base environment", "toolchain_dir", toolchainDir)
		return b.buildOnce(ctx, b.env, defaultSDKVersion)
	}
	if err != nil {
		return nil, err
	}

	b.logger.Info("building for multiple sdk versions", "versions", versions)
	var results []Result
	for _, version := range versions {
		sdkVersion := platform + "_" + version

		toolchain, err := b.toolchainEnv(ctx, version, b.env)
		if err != nil {
			b.logger.Error("could not get toolchain environment", "version", version, "error", err)
			results = append(results, Result{
				Message: fmt.Sprintf("%s(all configs, all arches, %s)", platform, sdkVersion),
			})
			continue
		}
		b.applyToolchain(toolchain)

		if err := b.cleanSource(); err != nil {
			return results, fmt.Errorf("cleaning %s between sdk versions: %w", platform, err)
		}

		versionResults, err := b.buildOnce(ctx, b.env.With(toolchain), sdkVersion)
		results = append(results, versionResults...)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// readToolchainVersions returns the non-blank lines of path.
func readToolchainVersions(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var versions []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			versions = append(versions, line)
		}
	}
	return versions, scanner.Err()
}

// cleanSource empties the platform source directory between SDK
// versions: subdirectories are removed and files are deleted unless
// kept. The SWIG wrapper is kept when bindings are not regenerated.
func (b *PlatformBuilder) cleanSource() error {
	source := b.source()
	var keep []string
	if !b.settings.GenerateSwig {
		keep = append(keep, swig.WrapperFileName)
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := filepath.Join(source, entry.Name())
		if entry.IsDir() {
			if err := os.RemoveAll(path); err != nil {
				return err
			}
			continue
		}
		if slices.Contains(keep, entry.Name()) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}
