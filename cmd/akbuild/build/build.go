// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/akbuild/akbuild/cmd/akbuild/cli"
	"github.com/akbuild/akbuild/lib/archive"
	libbuild "github.com/akbuild/akbuild/lib/build"
	"github.com/akbuild/akbuild/lib/buildlog"
	"github.com/akbuild/akbuild/lib/config"
	"github.com/akbuild/akbuild/lib/dedupe"
	"github.com/akbuild/akbuild/lib/preference"
	"github.com/akbuild/akbuild/lib/swig"
)

type buildParams struct {
	cli.JSONOutput

	Platforms []string `json:"platforms" flag:"platforms,p" desc:"target platforms (default: every platform supported by this host)"`
	Arches    []string `json:"arches" flag:"arches,a" desc:"architectures of a single multi-architecture platform (default: all)"`
	Configs   []string `json:"configs" flag:"configs,c" desc:"configurations: Debug, Profile, Release (default: all)"`

	WwiseSDK   string `json:"wwise_sdk" flag:"wwise-sdk,w" desc:"Wwise SDK folder; falls back to the preference file, then WWISESDK"`
	AndroidSDK string `json:"android_sdk" flag:"android-sdk,s" desc:"Android SDK folder; falls back to the preference file, then ANDROID_HOME"`
	AndroidNDK string `json:"android_ndk" flag:"android-ndk,n" desc:"Android NDK folder; falls back to the preference file, then ANDROID_NDK_ROOT"`

	UpdatePref          bool   `json:"update_pref" flag:"update-pref,u" desc:"write the locations given with -w, -s and -n to the preference file"`
	Verbose             bool   `json:"verbose" flag:"verbose,V" desc:"show all log messages on the console"`
	GenerateSwig        bool   `json:"generate_swig" flag:"generate-swig,g" desc:"generate the SWIG API binding before building"`
	SkipPremake         bool   `json:"skip_premake" flag:"skip-premake,S" desc:"skip premake project generation"`
	MultiSDK            bool   `json:"multi_sdk" flag:"multi-sdk,M" desc:"build once per platform SDK version in the toolchain version file"`
	DeleteLogs          bool   `json:"delete_logs" flag:"delete-logs,d" desc:"delete previous log files before this run"`
	ExcludeSimulatorSDK bool   `json:"exclude_simulator_sdk" flag:"exclude-simulator-sdk,x" desc:"skip Apple simulator SDK targets"`
	ToolchainVers       string `json:"toolchain_vers" flag:"toolchain-vers-filename,t" desc:"toolchain version file name for multi-SDK builds" default:"ToolchainVers.txt"`
	ConfigPath          string `json:"-" flag:"config" desc:"akbuild.yaml config file (default: $AKBUILD_CONFIG)"`
}

// Command returns the "build" command.
func Command() *cli.Command {
	return command(defaultDeps())
}

func command(d deps) *cli.Command {
	var params buildParams
	return &cli.Command{
		Name:    "build",
		Summary: "Build the sound engine plugin for one or more platforms",
		Description: `Build the Wwise Unity Integration sound engine plugin.

For each platform, project files are generated with premake, the C# API
binding is optionally regenerated with SWIG, and every (architecture,
configuration) tuple is built. A failing tuple does not stop the rest of
the run. Simulator builds of Apple device platforms have their
duplicate object files removed.`,
		Examples: []cli.Example{
			{
				Description: "Build every configuration of Android armeabi-v7a",
				Command:     "akbuild build -p Android -a armeabi-v7a",
			},
			{
				Description: "Build Mac Profile against an SDK and remember its location",
				Command:     "akbuild build -p Mac -c Profile -w /Users/me/Wwise/SDK -u",
			},
			{
				Description: "Build every platform supported by this host",
				Command:     "akbuild build",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("build", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected arguments: %s", strings.Join(args, " "))
			}
			return run(ctx, d, &params)
		},
	}
}

func run(ctx context.Context, d deps, params *buildParams) error {
	cfg, err := config.Discover(params.ConfigPath)
	if err != nil {
		return cli.Classify(fmt.Errorf("loading configuration: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return cli.Validation("invalid configuration: %v", err)
	}

	log, err := buildlog.Open(buildlog.Options{
		Dir:        cfg.Paths.Logs,
		Console:    d.console,
		Verbose:    params.Verbose,
		DeleteLogs: params.DeleteLogs,
	})
	if err != nil {
		return cli.Internal("opening build log: %w", err)
	}
	defer log.Close()
	logger := log.With("command", "build")

	request := libbuild.Request{
		Settings: libbuild.Settings{
			Arches:                params.Arches,
			Configs:               params.Configs,
			GenerateSwig:          params.GenerateSwig,
			SkipPremake:           params.SkipPremake,
			MultiSDK:              params.MultiSDK,
			ExcludeSimulatorSDK:   params.ExcludeSimulatorSDK,
			ToolchainVersFilename: params.ToolchainVers,
		},
		WwiseSDK:          params.WwiseSDK,
		AndroidSDK:        params.AndroidSDK,
		AndroidNDK:        params.AndroidNDK,
		UpdatePreferences: params.UpdatePref,
	}
	for _, platform := range params.Platforms {
		request.Platforms = append(request.Platforms, libbuild.Platform(platform))
	}

	if err := request.Validate(d.goos); err != nil {
		return invalid(logger, err)
	}

	preferences := preference.Open(cfg.Paths.Preferences)
	locations, err := libbuild.ResolveLocations(&request, preferences, d.lookupEnv, logger)
	if err != nil {
		return invalid(logger, err)
	}

	logger.Info("build started", "log", log.Path(), "platforms", request.Platforms)

	runner := d.newRunner(logger)
	toolchain := archive.NewToolchain(runner)
	toolchain.Lipo = cfg.Tools.Lipo
	toolchain.Ar = cfg.Tools.Ar
	toolchain.Libtool = cfg.Tools.Libtool

	orchestrator := &libbuild.Orchestrator{
		Tools: libbuild.Toolbox{
			Runner: runner,
			Config: cfg,
			Bindings: &swig.Generator{
				Runner: runner,
				Swig:   cfg.Tools.Swig,
				Logger: logger,
			},
			Dedupe: &dedupe.Deduplicator{
				Archiver:    toolchain,
				Marker:      cfg.Dedupe.Marker,
				ScratchRoot: cfg.Dedupe.ScratchRoot,
				Logger:      logger,
			},
			Logger: logger,
		},
		Preferences: preferences,
	}

	report, err := orchestrator.Run(ctx, request, locations)
	if err != nil {
		logger.Error("build aborted", "error", err)
		report.Log(logger, log.Path())
		return cli.Classify(err)
	}
	report.Log(logger, log.Path())

	if done, err := params.EmitJSON(d.stdout, report); done && err != nil {
		return err
	}
	if !report.OK() {
		return &cli.ExitError{Code: 1}
	}
	return nil
}

// invalid logs a rejected request and returns it as a validation error.
func invalid(logger *slog.Logger, err error) error {
	var rejected *libbuild.InvalidRequestError
	if !errors.As(err, &rejected) {
		return cli.Classify(err)
	}
	logger.Error(rejected.Message)
	return cli.Validation("%s. Use -h for help. Aborted", rejected.Message)
}
