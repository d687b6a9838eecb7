// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/akbuild/akbuild/lib/toolexec"
)

// visualStudioTasks are the MSBuild targets run per configuration.
var visualStudioTasks = []string{"Clean", "Build"}

// step is one unit of a build tuple: a tool invocation or an in-process
// action such as deduplication.
type step struct {
	description string
	run         func(ctx context.Context) error
}

func (b *PlatformBuilder) toolStep(invocation toolexec.Invocation) step {
	return step{
		description: invocation.String(),
		run: func(ctx context.Context) error {
			output, err := b.tools.Runner.Run(ctx, invocation)
			if output.Stdout != "" {
				b.logger.Debug("stdout", "command", invocation.Name, "output", output.Stdout)
			}
			if output.Stderr != "" {
				b.logger.Debug("stderr", "command", invocation.Name, "output", output.Stderr)
			}
			return err
		},
	}
}

// runSteps runs every step in order, continuing past failures, and
// reports whether all succeeded.
func (b *PlatformBuilder) runSteps(ctx context.Context, steps []step) bool {
	success := true
	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			success = false
			b.logger.Error("build task failed, skipped", "task", s.description, "error", err)
		}
	}
	return success
}

// steps returns the build tuple of (arch, config).
func (b *PlatformBuilder) steps(arch, config string, env Env) []step {
	pairs := env.Pairs()
	var steps []step

	switch b.spec.Kind {
	case KindVisualStudio:
		for _, task := range visualStudioTasks {
			steps = append(steps, b.toolStep(toolexec.Invocation{
				Name: b.msbuild,
				Args: []string{b.project, "/t:" + task, "/p:Configuration=" + config},
				Env:  pairs,
			}))
		}

	case KindXcode:
		steps = append(steps, b.toolStep(toolexec.Invocation{
			Name: b.tools.Config.Tools.Xcodebuild,
			Args: []string{
				"-project", b.project,
				"-configuration", config,
				WwiseSDKVar + "=" + env.Lookup(WwiseSDKVar),
				"build", "-allowProvisioningUpdates",
			},
			Env: pairs,
		}))

	case KindXcodeDevice:
		for _, sdk := range b.sdks {
			steps = append(steps, b.toolStep(toolexec.Invocation{
				Name: b.tools.Config.Tools.Xcodebuild,
				Args: []string{
					"-project", b.project,
					"-configuration", config,
					"-sdk", sdk.Name,
					WwiseSDKVar + "=" + env.Lookup(WwiseSDKVar),
					"build", "-allowProvisioningUpdates",
				},
				Env: pairs,
			}))
			if sdk.Simulator && b.tools.Dedupe != nil {
				steps = append(steps, b.dedupeStep(b.SimulatorLibrary(config, sdk)))
			}
		}

	case KindMultiArch:
		name, args := b.multiArchCommand(arch, config, env)
		steps = append(steps,
			b.toolStep(toolexec.Invocation{Name: name, Args: slices.Concat(args, []string{"clean"}), Env: pairs}),
			b.toolStep(toolexec.Invocation{Name: name, Args: args, Env: pairs}),
		)
	}
	return steps
}

// multiArchCommand returns the build tool and arguments for one
// architecture and configuration, without a target.
func (b *PlatformBuilder) multiArchCommand(arch, config string, env Env) (string, []string) {
	source := b.source()
	lower := strings.ToLower(config)
	if b.spec.Platform == Android {
		ndkBuild := "ndk-build"
		if runtime.GOOS == "windows" {
			ndkBuild += ".cmd"
		}
		return filepath.Join(env.Lookup(AndroidNDKVar), ndkBuild), []string{
			"-C", source,
			"NDK_PROJECT_PATH=.",
			"APP_BUILD_SCRIPT=Android.mk",
			"APP_ABI=" + arch,
			"PM5_CONFIG=" + lower,
		}
	}
	return b.tools.Config.Tools.Make, []string{"-C", source, "config=" + lower + "_" + arch}
}

// SimulatorLibrary is where Xcode leaves the static library of a
// simulator SDK build.
func (b *PlatformBuilder) SimulatorLibrary(config string, sdk SDK) string {
	return filepath.Join(b.source(), "build", config+"-"+sdk.Name, "lib"+ProductName+".a")
}

func (b *PlatformBuilder) dedupeStep(library string) step {
	return step{
		description: "remove duplicate objects from " + library,
		run: func(ctx context.Context) error {
			result, err := b.tools.Dedupe.Run(ctx, library)
			if err != nil {
				return err
			}
			if result.Skipped {
				b.logger.Info("duplicate object removal skipped", "library", library, "reason", result.Reason)
				return nil
			}
			removed := 0
			for _, slice := range result.Slices {
				removed += len(slice.Removed)
			}
			b.logger.Info("removed duplicate objects", "library", library, "removed", removed, "changed", result.Changed())
			return nil
		},
	}
}

// findMSBuild asks vswhere for the MSBuild of the platform's Visual
// Studio version range.
func (b *PlatformBuilder) findMSBuild(ctx context.Context) (string, error) {
	invocation := toolexec.Invocation{
		Name: b.tools.Config.Tools.Vswhere,
		Args: []string{
			"-latest",
			"-requires", "Microsoft.Component.MSBuild",
			"-find", `MSBuild/**/Bin/MSBuild.exe`,
			"-version", b.spec.VisualStudioRange,
		},
		Env: b.env.Pairs(),
	}
	output, err := b.tools.Runner.Run(ctx, invocation)
	if err != nil {
		return "", fmt.Errorf("locating msbuild: %w", err)
	}
	first, _, _ := strings.Cut(strings.TrimSpace(output.Stdout), "\n")
	path := strings.ReplaceAll(strings.TrimSpace(first), `\\`, `\`)
	if path == "" {
		return "", fmt.Errorf("could not find an MSBuild path for Visual Studio %s, it is required to build the plugin", b.spec.VisualStudioRange)
	}
	return path, nil
}
