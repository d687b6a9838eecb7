// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/akbuild/akbuild/lib/preference"
)

// Request is one build run across platforms.
type Request struct {
	// Platforms to build. Empty means every platform of the host.
	Platforms []Platform

	Settings Settings

	// WwiseSDK, AndroidSDK and AndroidNDK are locations given on the
	// command line. Empty values fall back to the preference file and
	// then the environment.
	WwiseSDK   string
	AndroidSDK string
	AndroidNDK string

	// UpdatePreferences writes command-line locations back to the
	// preference file.
	UpdatePreferences bool
}

// InvalidRequestError describes a rejected request.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &InvalidRequestError{Message: fmt.Sprintf(format, args...)}
}

// Validate checks the platform, architecture and configuration
// choices against the host operating system (runtime.GOOS naming).
// Empty platform and configuration lists are filled with defaults.
func (r *Request) Validate(goos string) error {
	host := HostPlatforms(goos)
	if len(r.Platforms) == 0 {
		r.Platforms = host
	}
	for _, platform := range r.Platforms {
		if !slices.Contains(host, platform) {
			return invalid("found unsupported platform: %s; supported on this host: %s", platform, joinPlatforms(host))
		}
	}

	if len(r.Settings.Arches) > 0 {
		if len(r.Platforms) != 1 {
			return invalid("found %d platforms when using -a; use exactly one multi-architecture platform", len(r.Platforms))
		}
		spec, _ := Lookup(r.Platforms[0])
		if spec.Kind != KindMultiArch {
			return invalid("found single-architecture platform %s when using -a; use only one multi-architecture platform", spec.Platform)
		}
		for _, arch := range r.Settings.Arches {
			if !spec.SupportsArch(arch) {
				return invalid("found unsupported architecture %s for the platform %s; available: %s", arch, spec.Platform, strings.Join(spec.Arches, ", "))
			}
		}
	}

	if len(r.Settings.Configs) == 0 {
		r.Settings.Configs = Configs
	}
	for _, config := range r.Settings.Configs {
		if !IsConfig(config) {
			return invalid("found unsupported configuration %s; available: %s", config, strings.Join(Configs, ", "))
		}
	}
	return nil
}

// Locations are the resolved SDK locations of a request.
type Locations struct {
	WwiseSDK   preference.Location
	AndroidSDK preference.Location
	AndroidNDK preference.Location
}

// All returns the resolved locations, skipping unresolved ones.
func (l Locations) All() []preference.Location {
	var all []preference.Location
	for _, location := range []preference.Location{l.WwiseSDK, l.AndroidSDK, l.AndroidNDK} {
		if location.Name != "" && location.Path != "" {
			all = append(all, location)
		}
	}
	return all
}

// ResolveLocations resolves the Wwise SDK and, when Android is among
// the platforms, the Android SDK and NDK.
func ResolveLocations(r *Request, file *preference.File, lookupEnv func(string) (string, bool), logger *slog.Logger) (Locations, error) {
	var locations Locations
	var err error

	locations.WwiseSDK, err = preference.Resolve(file, WwiseSDKVar, r.WwiseSDK, "Wwise SDK folder", "-w", lookupEnv, logger)
	if err != nil {
		return locations, invalid("%v", err)
	}

	android := slices.Contains(r.Platforms, Android)
	if android && strings.ContainsAny(locations.WwiseSDK.Path, " \t") {
		return locations, invalid("Wwise SDK folder contains white spaces, the Android build will fail; remove all white spaces from the path: %s", locations.WwiseSDK.Path)
	}

	if android {
		locations.AndroidSDK, err = preference.Resolve(file, AndroidSDKVar, r.AndroidSDK, "Android SDK folder", "-s", lookupEnv, logger)
		if err != nil {
			return locations, invalid("%v", err)
		}
		locations.AndroidNDK, err = preference.Resolve(file, AndroidNDKVar, r.AndroidNDK, "Android NDK folder", "-n", lookupEnv, logger)
		if err != nil {
			return locations, invalid("%v", err)
		}
	}

	if r.UpdatePreferences && !locations.WwiseSDK.FromCommandLine &&
		!locations.AndroidSDK.FromCommandLine && !locations.AndroidNDK.FromCommandLine {
		return locations, invalid("found -u without one of -w, -s or -n; cannot update preferences without those options")
	}
	return locations, nil
}

func joinPlatforms(platforms []Platform) string {
	names := make([]string, len(platforms))
	for i, platform := range platforms {
		names[i] = string(platform)
	}
	return strings.Join(names, ", ")
}
