// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package swig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/akbuild/akbuild/lib/toolexec"
)

// AppleSDK is a discovered platform SDK.
type AppleSDK struct {
	Root    string
	Version string
}

func (g *Generator) detectAppleSDK(ctx context.Context, request Request) (AppleSDK, error) {
	name := request.Target.AppleSDK
	if name == "" {
		return AppleSDK{}, fmt.Errorf("apple target has no platform sdk name")
	}

	if request.SDKRoot != "" {
		version, _ := sdkVersion(name, filepath.Base(request.SDKRoot))
		return AppleSDK{Root: request.SDKRoot, Version: version}, nil
	}

	xcodeSelect := g.XcodeSelect
	if xcodeSelect == "" {
		xcodeSelect = "/usr/bin/xcode-select"
	}
	invocation := toolexec.Invocation{Name: xcodeSelect, Args: []string{"--print-path"}, Env: request.Env}
	output, err := g.Runner.Run(ctx, invocation)
	if err != nil {
		return AppleSDK{}, fmt.Errorf("locating xcode developer directory: %w", err)
	}
	developer, _, _ := strings.Cut(strings.TrimSpace(output.Stdout), "\n")
	if developer == "" {
		return AppleSDK{}, toolexec.Unparsable(invocation, "empty developer directory")
	}

	return LatestAppleSDK(filepath.Join(developer, "Platforms", name+".platform", "Developer", "SDKs"), name)
}

// LatestAppleSDK returns the highest versioned <name><major.minor>.sdk
// entry of dir.
func LatestAppleSDK(dir, name string) (AppleSDK, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return AppleSDK{}, fmt.Errorf("listing platform sdks: %w", err)
	}

	var latest AppleSDK
	for _, entry := range entries {
		version, ok := sdkVersion(name, entry.Name())
		if !ok {
			continue
		}
		if latest.Version == "" || compareVersions(version, latest.Version) > 0 {
			latest = AppleSDK{Root: filepath.Join(dir, entry.Name()), Version: version}
		}
	}
	if latest.Version == "" {
		return AppleSDK{}, fmt.Errorf("failed to find platform sdk for %s in %s", name, dir)
	}
	return latest, nil
}

func sdkVersion(name, entry string) (string, bool) {
	pattern := regexp.MustCompile(regexp.QuoteMeta(name) + `([0-9]+\.[0-9]+)\.sdk`)
	match := pattern.FindStringSubmatch(entry)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// compareVersions compares dotted numeric versions. Missing or
// malformed components count as zero.
func compareVersions(a, b string) int {
	left := strings.Split(a, ".")
	right := strings.Split(b, ".")
	for i := 0; i < max(len(left), len(right)); i++ {
		var l, r int
		if i < len(left) {
			l, _ = strconv.Atoi(left[i])
		}
		if i < len(right) {
			r, _ = strconv.Atoi(right[i])
		}
		if l != r {
			if l < r {
				return -1
			}
			return 1
		}
	}
	return 0
}
