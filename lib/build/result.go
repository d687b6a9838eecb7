// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"fmt"
	"log/slog"
	"strings"
)

// Result is the outcome of one build tuple. Message names the tuple,
// such as "Android(arm64-v8a, Debug, default SDK version)".
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UnsupportedPlatformError is returned by [NewBuilder] for a platform
// outside the known set.
type UnsupportedPlatformError struct {
	Platform Platform
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s", e.Platform)
}

// Report groups results by outcome.
type Report struct {
	Failed    []string `json:"failed"`
	Succeeded []string `json:"succeeded"`
}

// Summarize builds a report from results, preserving their order.
func Summarize(results []Result) Report {
	report := Report{Failed: []string{}, Succeeded: []string{}}
	for _, result := range results {
		if result.Success {
			report.Succeeded = append(report.Succeeded, result.Message)
		} else {
			report.Failed = append(report.Failed, result.Message)
		}
	}
	return report
}

// OK reports whether no build failed.
func (r Report) OK() bool {
	return len(r.Failed) == 0
}

// Log writes the report the way a build log ends: the failed list at
// Error, the succeeded list at Info, then the overall verdict.
func (r Report) Log(logger *slog.Logger, logPath string) {
	logger.Error("list of failed builds: " + strings.Join(r.Failed, ", "))
	logger.Info("list of succeeded builds: " + strings.Join(r.Succeeded, ", "))
	if r.OK() {
		logger.Info("*BUILD SUCCEEDED*")
		return
	}
	logger.Error("***BUILD FAILED***", "log", logPath)
}
