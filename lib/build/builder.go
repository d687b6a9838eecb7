// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/akbuild/akbuild/lib/config"
	"github.com/akbuild/akbuild/lib/dedupe"
	"github.com/akbuild/akbuild/lib/premake"
	"github.com/akbuild/akbuild/lib/swig"
	"github.com/akbuild/akbuild/lib/toolexec"
)

// defaultSDKVersion labels results of a build without a toolchain
// version list.
const defaultSDKVersion = "default SDK version"

// xcodeToolchain is the toolchain version Xcode builds set up.
const xcodeToolchain = "Xcode1600"

// toolchainScript is the per-platform script that prints toolchain
// variables for a version.
const toolchainScript = "GetToolchainEnv.py"

// Settings are the per-run build choices shared by every platform.
type Settings struct {
	// Arches restricts multi-arch platforms. Empty means all.
	Arches []string

	// Configs to build. Empty means all of [Configs].
	Configs []string

	GenerateSwig        bool
	SkipPremake         bool
	MultiSDK            bool
	ExcludeSimulatorSDK bool

	// ToolchainVersFilename is the toolchain version list read for
	// multi-SDK builds. Default: ToolchainVers.txt
	ToolchainVersFilename string
}

// Bindings generates the C# API binding.
type Bindings interface {
	Generate(ctx context.Context, request swig.Request) error
}

// Deduplicator removes duplicate objects from a simulator library.
type Deduplicator interface {
	Run(ctx context.Context, libraryPath string) (*dedupe.Result, error)
}

// Toolbox is what builders need from outside.
type Toolbox struct {
	Runner toolexec.Runner
	Config *config.Config

	// Bindings is used when Settings.GenerateSwig is set.
	Bindings Bindings

	// Dedupe runs after simulator SDK builds. Nil skips the step.
	Dedupe Deduplicator

	Logger *slog.Logger
}

// PlatformBuilder builds one platform.
type PlatformBuilder struct {
	spec     Spec
	settings Settings
	tools    Toolbox
	logger   *slog.Logger

	// env is the base environment of every command, including any
	// toolchain variables fetched at construction.
	env Env

	// arches holds a single empty entry on single-arch platforms.
	arches  []string
	configs []string

	// project is the solution or Xcode project.
	project string

	// msbuild is the located MSBuild executable. Visual Studio only.
	msbuild string

	// sdks are the Xcode SDKs to build. Device platforms only.
	sdks []SDK
}

// NewBuilder returns the builder of platform. Visual Studio builders
// locate MSBuild and Xcode builders fetch their toolchain environment
// here, so either failing is reported before anything is built.
func NewBuilder(ctx context.Context, platform Platform, settings Settings, tools Toolbox, env Env) (*PlatformBuilder, error) {
	spec, ok := Lookup(platform)
	if !ok {
		return nil, &UnsupportedPlatformError{Platform: platform}
	}
	if tools.Logger == nil {
		tools.Logger = slog.New(slog.DiscardHandler)
	}
	if settings.ToolchainVersFilename == "" {
		settings.ToolchainVersFilename = "ToolchainVers.txt"
	}

	b := &PlatformBuilder{
		spec:     spec,
		settings: settings,
		tools:    tools,
		logger:   tools.Logger.With("platform", string(platform)),
		env:      env.With(Env{}),
		arches:   []string{""},
		configs:  settings.Configs,
	}
	if len(b.configs) == 0 {
		b.configs = Configs
	}

	source := b.source()
	switch spec.Kind {
	case KindVisualStudio:
		msbuild, err := b.findMSBuild(ctx)
		if err != nil {
			return nil, err
		}
		b.msbuild = msbuild
		b.project = filepath.Join(source, ProductName+string(platform)+".sln")

	case KindXcode, KindXcodeDevice:
		b.project = filepath.Join(source, ProductName+string(platform)+".xcodeproj")
		toolchain, err := b.toolchainEnv(ctx, xcodeToolchain, b.env)
		if err != nil {
			return nil, fmt.Errorf("could not get toolchain environment for %s (%s): %w", platform, xcodeToolchain, err)
		}
		b.applyToolchain(toolchain)
		b.env = b.env.With(toolchain)

		if spec.Kind == KindXcodeDevice {
			for _, sdk := range spec.SDKs {
				if sdk.Simulator && settings.ExcludeSimulatorSDK {
					continue
				}
				b.sdks = append(b.sdks, sdk)
			}
		}

	case KindMultiArch:
		b.arches = settings.Arches
		if len(b.arches) == 0 {
			b.arches = spec.Arches
		}
	}

	return b, nil
}

// Platform returns the platform being built.
func (b *PlatformBuilder) Platform() Platform {
	return b.spec.Platform
}

// Build runs the platform build: once with the base environment, or,
// for multi-SDK builds with a toolchain version list, once per listed
// version. Project generation failure aborts and returns an error; any
// other failure is recorded in the results.
func (b *PlatformBuilder) Build(ctx context.Context) ([]Result, error) {
	if !b.settings.MultiSDK {
		return b.buildOnce(ctx, b.env, defaultSDKVersion)
	}
	return b.buildEachSDK(ctx)
}

func (b *PlatformBuilder) buildOnce(ctx context.Context, env Env, sdkVersion string) ([]Result, error) {
	if err := b.generateProjects(ctx, env); err != nil {
		return nil, err
	}

	platform := string(b.spec.Platform)
	var results []Result
	for _, arch := range b.arches {
		b.generateBinding(ctx, env, arch)
		for _, config := range b.configs {
			var message string
			if arch == "" {
				message = fmt.Sprintf("%s(%s, %s)", platform, config, sdkVersion)
			} else {
				message = fmt.Sprintf("%s(%s, %s, %s)", platform, arch, config, sdkVersion)
			}
			b.logger.Info("building", "target", message)
			success := b.runSteps(ctx, b.steps(arch, config, env))
			results = append(results, Result{Success: success, Message: message})
		}
	}
	return results, nil
}

func (b *PlatformBuilder) generateProjects(ctx context.Context, env Env) error {
	if b.settings.SkipPremake {
		return nil
	}
	paths := b.tools.Config.Paths
	command := premake.Command{
		Executable: paths.PremakeExecutable,
		Scripts:    paths.PremakeScripts,
		File:       paths.PremakeFile,
		Target:     b.spec.Premake,
		Env:        env.Pairs(),
	}
	b.logger.Info("generating projects", "command", command.Invocation().String())
	if err := command.Run(ctx, b.tools.Runner); err != nil {
		return fmt.Errorf("generating %s projects: %w", b.spec.Platform, err)
	}
	return nil
}

// generateBinding runs SWIG when requested. A failure is logged and
// the build goes on with whatever binding is already in place.
func (b *PlatformBuilder) generateBinding(ctx context.Context, env Env, arch string) {
	if !b.settings.GenerateSwig || b.tools.Bindings == nil {
		return
	}
	b.logger.Info("generating api binding", "arch", arch)
	request := SwigRequest(b.spec, b.tools.Config, env, arch)
	if err := b.tools.Bindings.Generate(ctx, request); err != nil {
		b.logger.Error("api binding generation failed", "arch", arch, "error", err)
	}
}

// SwigRequest returns the binding request of spec's platform for arch
// (empty on single-arch platforms).
func SwigRequest(spec Spec, cfg *config.Config, env Env, arch string) swig.Request {
	platform := string(spec.Platform)
	apiDir := filepath.Join(cfg.Paths.APIOutput, platform)
	if arch != "" {
		apiDir = filepath.Join(apiDir, arch)
	}
	source := cfg.PlatformSource(platform)
	return swig.Request{
		Target: spec.SwigTarget(arch),
		Paths: swig.Paths{
			SDKInclude:      filepath.Join(env.Lookup(WwiseSDKVar), "include"),
			PlatformInclude: source,
			MacInclude:      cfg.PlatformSource(string(Mac)),
			Wrapper:         filepath.Join(source, swig.WrapperFileName),
			APIDir:          apiDir,
			Interface:       cfg.Paths.SwigInterface,
		},
		Env:     env.Pairs(),
		SDKRoot: env.Lookup("SDKROOT"),
	}
}

func (b *PlatformBuilder) source() string {
	return b.tools.Config.PlatformSource(string(b.spec.Platform))
}

func (b *PlatformBuilder) applyToolchain(toolchain Env) {
	for _, pair := range toolchain.Pairs() {
		b.logger.Info("applying toolchain variable", "variable", pair)
	}
}

// toolchainEnv runs the platform's toolchain script for version.
func (b *PlatformBuilder) toolchainEnv(ctx context.Context, version string, env Env) (Env, error) {
	script := filepath.Join(b.tools.Config.ToolchainDir(string(b.spec.Platform)), toolchainScript)
	invocation := toolexec.Invocation{
		Name: b.tools.Config.Tools.Python,
		Args: []string{script, version},
		Env:  env.Pairs(),
	}
	output, err := b.tools.Runner.Run(ctx, invocation)
	if err != nil {
		return Env{}, err
	}
	return ParseToolchainEnv(output.Stdout, env.Lookup)
}
