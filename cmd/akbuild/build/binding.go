// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/akbuild/akbuild/cmd/akbuild/cli"
	libbuild "github.com/akbuild/akbuild/lib/build"
	"github.com/akbuild/akbuild/lib/config"
	"github.com/akbuild/akbuild/lib/preference"
	"github.com/akbuild/akbuild/lib/swig"
)

type bindingParams struct {
	cli.JSONOutput

	Arches     []string `json:"arches" flag:"arches,a" desc:"architectures to generate for a multi-architecture platform (default: all)"`
	WwiseSDK   string   `json:"wwise_sdk" flag:"wwise-sdk,w" desc:"Wwise SDK folder; falls back to the preference file, then WWISESDK"`
	Verbose    bool     `json:"-" flag:"verbose,V" desc:"log every tool invocation"`
	ConfigPath string   `json:"-" flag:"config" desc:"akbuild.yaml config file (default: $AKBUILD_CONFIG)"`
}

// bindingResult is the outcome of one generation.
type bindingResult struct {
	Arch    string `json:"arch,omitempty"`
	APIDir  string `json:"api_dir"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BindingCommand returns the "binding" command.
func BindingCommand() *cli.Command {
	return bindingCommand(defaultDeps())
}

func bindingCommand(d deps) *cli.Command {
	var params bindingParams
	return &cli.Command{
		Name:    "binding",
		Summary: "Generate the C# API binding of a platform with SWIG",
		Description: `Generate the C# API binding of one platform without building it.

Multi-architecture platforms get one binding per architecture, written
under the API output directory in a folder named after the
architecture.`,
		Usage: "akbuild binding <platform> [flags]",
		Examples: []cli.Example{
			{
				Description: "Regenerate the iOS binding",
				Command:     "akbuild binding iOS -w /Users/me/Wwise/SDK",
			},
			{
				Description: "Regenerate the 64-bit Android bindings",
				Command:     "akbuild binding Android -a arm64-v8a -a x86_64",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("binding", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one platform, got %d arguments\n\nUsage: akbuild binding <platform>", len(args))
			}
			return runBinding(ctx, d, &params, libbuild.Platform(args[0]))
		},
	}
}

func runBinding(ctx context.Context, d deps, params *bindingParams, platform libbuild.Platform) error {
	spec, ok := libbuild.Lookup(platform)
	if !ok {
		return cli.Validation("unsupported platform: %s; available: %s", platform, joinPlatforms(libbuild.Platforms))
	}

	arches := params.Arches
	if len(arches) > 0 && spec.Kind != libbuild.KindMultiArch {
		return cli.Validation("platform %s has a single architecture; -a is not allowed", platform)
	}
	for _, arch := range arches {
		if !spec.SupportsArch(arch) {
			return cli.Validation("unsupported architecture %s for the platform %s; available: %s", arch, platform, strings.Join(spec.Arches, ", "))
		}
	}
	if len(arches) == 0 {
		arches = []string{""}
		if spec.Kind == libbuild.KindMultiArch {
			arches = spec.Arches
		}
	}

	cfg, err := config.Discover(params.ConfigPath)
	if err != nil {
		return cli.Classify(fmt.Errorf("loading configuration: %w", err))
	}
	logger := d.newLogger(params.Verbose).With("command", "binding", "platform", string(platform))

	location, err := preference.Resolve(preference.Open(cfg.Paths.Preferences), libbuild.WwiseSDKVar,
		params.WwiseSDK, "Wwise SDK folder", "-w", d.lookupEnv, logger)
	if err != nil {
		return cli.Validation("%v", err)
	}
	var env libbuild.Env
	env.Set(location.Name, location.Path)

	runner := d.newRunner(logger)
	generator := &swig.Generator{Runner: runner, Swig: cfg.Tools.Swig, Logger: logger}

	results := make([]bindingResult, 0, len(arches))
	failed := 0
	for _, arch := range arches {
		request := libbuild.SwigRequest(spec, cfg, env, arch)
		result := bindingResult{Arch: arch, APIDir: request.Paths.APIDir, Success: true}
		if err := generator.Generate(ctx, request); err != nil {
			logger.Error("api binding generation failed", "arch", arch, "error", err)
			result.Success = false
			result.Error = err.Error()
			failed++
		}
		results = append(results, result)
	}

	if done, err := params.EmitJSON(d.stdout, results); done && err != nil {
		return err
	} else if !done {
		for _, result := range results {
			status := "ok"
			if !result.Success {
				status = "FAILED: " + result.Error
			}
			fmt.Fprintf(d.stdout, "%s: %s\n", result.APIDir, status)
		}
	}

	if failed > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func joinPlatforms(platforms []libbuild.Platform) string {
	names := make([]string, len(platforms))
	for i, platform := range platforms {
		names[i] = string(platform)
	}
	return strings.Join(names, ", ")
}
