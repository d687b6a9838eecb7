// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/akbuild/akbuild/lib/preference"
)

// Orchestrator builds every platform of a request in turn.
type Orchestrator struct {
	Tools Toolbox

	// Preferences receives command-line locations when the request
	// asks for it.
	Preferences *preference.File

	// BaseEnv is the environment every builder starts from, before
	// the resolved locations are added.
	BaseEnv Env
}

// Run builds the request's platforms with the resolved locations and
// returns the report. An unsupported platform is recorded as a failed
// result. Errors that abort the run (preference update failure,
// missing MSBuild or toolchain, project generation failure) are
// returned with the report of what completed.
func (o *Orchestrator) Run(ctx context.Context, request Request, locations Locations) (Report, error) {
	logger := o.Tools.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
		o.Tools.Logger = logger
	}

	env := o.BaseEnv.With(Env{})
	for _, location := range locations.All() {
		if request.UpdatePreferences && location.FromCommandLine && o.Preferences != nil {
			if err := o.Preferences.WriteField(location.Name, location.Path); err != nil {
				return Summarize(nil), fmt.Errorf("failed to update preference field %s: %w", location.Name, err)
			}
		}
		env.Set(location.Name, location.Path)
		logger.Info("environment variable set", "variable", location.Name, "value", location.Path)
	}

	var results []Result
	for _, platform := range request.Platforms {
		if err := ctx.Err(); err != nil {
			return Summarize(results), err
		}

		builder, err := NewBuilder(ctx, platform, request.Settings, o.Tools, env)
		var unsupported *UnsupportedPlatformError
		if errors.As(err, &unsupported) {
			logger.Error("undefined platform, skipped", "platform", string(platform))
			results = append(results, Result{Message: fmt.Sprintf("%s(UnsupportedPlatform)", platform)})
			continue
		}
		if err != nil {
			return Summarize(results), err
		}

		platformResults, err := builder.Build(ctx)
		results = append(results, platformResults...)
		if err != nil {
			return Summarize(results), err
		}
	}
	return Summarize(results), nil
}
