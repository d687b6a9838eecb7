// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for akbuild.
type Config struct {
	// Paths configures source, tool and output locations.
	Paths PathsConfig `yaml:"paths"`

	// Tools names the external executables. Bare names are resolved
	// on PATH at invocation time.
	Tools ToolsConfig `yaml:"tools"`

	// Dedupe configures the simulator library deduplication step.
	Dedupe DedupeConfig `yaml:"dedupe"`
}

// PathsConfig configures directory and file locations.
type PathsConfig struct {
	// Root is the native integration source directory. Each platform's
	// projects live in Root/<platform>.
	Root string `yaml:"root"`

	// Logs is the directory for build log files.
	Logs string `yaml:"logs"`

	// Preferences is the preference file holding SDK locations.
	Preferences string `yaml:"preferences"`

	// PremakeExecutable is the premake5 binary.
	PremakeExecutable string `yaml:"premake_executable"`

	// PremakeScripts is passed to premake as --scripts.
	PremakeScripts string `yaml:"premake_scripts"`

	// PremakeFile is the premake5.lua project description.
	PremakeFile string `yaml:"premake_file"`

	// ToolchainSetup holds one directory per platform with its
	// GetToolchainEnv.py script and toolchain version lists.
	ToolchainSetup string `yaml:"toolchain_setup"`

	// SwigInterface is the SWIG interface file for the API binding.
	SwigInterface string `yaml:"swig_interface"`

	// APIOutput receives the generated C# API, one directory per
	// platform.
	APIOutput string `yaml:"api_output"`
}

// ToolsConfig names the external executables.
type ToolsConfig struct {
	Lipo       string `yaml:"lipo"`
	Ar         string `yaml:"ar"`
	Libtool    string `yaml:"libtool"`
	Xcodebuild string `yaml:"xcodebuild"`
	Make       string `yaml:"make"`
	Python     string `yaml:"python"`

	// Swig is the SWIG executable. Empty means look it up on PATH.
	Swig string `yaml:"swig"`

	// Vswhere locates MSBuild on Windows hosts.
	Vswhere string `yaml:"vswhere"`
}

// DedupeConfig configures duplicate object removal.
type DedupeConfig struct {
	// Marker is the path substring identifying simulator libraries.
	// Default: simulator
	Marker string `yaml:"marker"`

	// ScratchRoot holds extracted slices. Empty means a temporary
	// directory per run.
	ScratchRoot string `yaml:"scratch_root"`
}

// Default returns the default configuration with paths expressed
// relative to ${AKBUILD_ROOT}. Root itself is empty and must be set by
// the caller or the config file.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Logs:              "${AKBUILD_ROOT}/../Logs",
			Preferences:       "${AKBUILD_ROOT}/../BuildPreferences.json",
			PremakeExecutable: "${AKBUILD_ROOT}/../Premake/premake5",
			PremakeScripts:    "${AKBUILD_ROOT}/../Premake",
			PremakeFile:       "${AKBUILD_ROOT}/Common/premake5.lua",
			ToolchainSetup:    "${AKBUILD_ROOT}/../ToolchainSetup",
			SwigInterface:     "${AKBUILD_ROOT}/Common/SoundEngine.swig",
			APIOutput:         "${AKBUILD_ROOT}/../Integration/Assets/Wwise/API/Runtime/Generated",
		},
		Tools: ToolsConfig{
			Lipo:       "lipo",
			Ar:         "ar",
			Libtool:    "libtool",
			Xcodebuild: "xcodebuild",
			Make:       "make",
			Python:     "python3",
			Vswhere:    `${ProgramFiles(x86)}\Microsoft Visual Studio\Installer\vswhere.exe`,
		},
		Dedupe: DedupeConfig{
			Marker: "simulator",
		},
	}
}

// Load loads configuration from the AKBUILD_CONFIG environment
// variable. Fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv("AKBUILD_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("AKBUILD_CONFIG environment variable not set; " +
			"set it to the path of your akbuild.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// [Default]. A relative paths.root is resolved against the directory
// containing the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Paths.Root != "" && !filepath.IsAbs(cfg.Paths.Root) {
		cfg.Paths.Root = filepath.Join(filepath.Dir(path), cfg.Paths.Root)
	}

	cfg.expandVariables()
	return cfg, nil
}

// Discover returns the configuration for a command: the file at
// explicit when set, else the file named by AKBUILD_CONFIG when set,
// else the defaults for the current directory as root.
func Discover(explicit string) (*Config, error) {
	if explicit != "" {
		return LoadFile(explicit)
	}
	if os.Getenv("AKBUILD_CONFIG") != "" {
		return Load()
	}
	return ForRoot(".")
}

// ForRoot returns the default configuration for the integration source
// directory root, with all paths expanded.
func ForRoot(root string) (*Config, error) {
	absolute, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}

	cfg := Default()
	cfg.Paths.Root = absolute
	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths
// and tool locations.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"AKBUILD_ROOT": c.Paths.Root,
		"HOME":         os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["AKBUILD_ROOT"] = c.Paths.Root // Update for dependent paths.

	for _, field := range []*string{
		&c.Paths.Logs,
		&c.Paths.Preferences,
		&c.Paths.PremakeExecutable,
		&c.Paths.PremakeScripts,
		&c.Paths.PremakeFile,
		&c.Paths.ToolchainSetup,
		&c.Paths.SwigInterface,
		&c.Paths.APIOutput,
		&c.Tools.Swig,
		&c.Tools.Vswhere,
		&c.Dedupe.ScratchRoot,
	} {
		*field = filepath.Clean(expandVars(*field, vars))
		if *field == "." {
			*field = ""
		}
	}
}

// varPattern matches ${VAR} and ${VAR:-default}. Variable names may
// contain parentheses for Windows names like ProgramFiles(x86).
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Root == "" {
		errs = append(errs, fmt.Errorf("paths.root is required"))
	} else if info, err := os.Stat(c.Paths.Root); err != nil || !info.IsDir() {
		errs = append(errs, fmt.Errorf("paths.root %s is not a directory", c.Paths.Root))
	}

	if c.Paths.Logs == "" {
		errs = append(errs, fmt.Errorf("paths.logs is required"))
	}

	if c.Dedupe.Marker == "" {
		errs = append(errs, fmt.Errorf("dedupe.marker is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// PlatformSource returns the source directory of a platform's native
// projects.
func (c *Config) PlatformSource(platform string) string {
	return filepath.Join(c.Paths.Root, platform)
}

// ToolchainDir returns the toolchain setup directory of a platform.
func (c *Config) ToolchainDir(platform string) string {
	return filepath.Join(c.Paths.ToolchainSetup, platform)
}
