// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"fmt"
	"slices"

	"github.com/akbuild/akbuild/lib/premake"
	"github.com/akbuild/akbuild/lib/swig"
)

// ProductName prefixes every generated solution and project.
const ProductName = "AkUnitySoundEngine"

// Platform is a build target platform.
type Platform string

const (
	Windows2017 Platform = "Windows_vc150"
	Windows2019 Platform = "Windows_vc160"
	Windows2022 Platform = "Windows_vc170"
	Mac         Platform = "Mac"
	IOS         Platform = "iOS"
	TVOS        Platform = "tvOS"
	VisionOS    Platform = "visionOS"
	Android     Platform = "Android"
	Linux       Platform = "Linux"
)

// Kind selects the builder implementation.
type Kind int

const (
	// KindVisualStudio builds a solution with MSBuild.
	KindVisualStudio Kind = iota

	// KindXcode builds a macOS Xcode project.
	KindXcode

	// KindXcodeDevice builds an Xcode project once per device and
	// simulator SDK.
	KindXcodeDevice

	// KindMultiArch builds once per architecture.
	KindMultiArch
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindVisualStudio:
		return "visualstudio"
	case KindXcode:
		return "xcode"
	case KindXcodeDevice:
		return "xcode-device"
	case KindMultiArch:
		return "multi-arch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// SDK is one Xcode -sdk value.
type SDK struct {
	Name      string
	Simulator bool
}

// Spec is the fixed description of one platform.
type Spec struct {
	Platform Platform
	Kind     Kind

	// VisualStudioRange is the vswhere -version filter.
	VisualStudioRange string

	// SDKs are built in order by device builders.
	SDKs []SDK

	// Arches are the supported architectures of multi-arch platforms,
	// in build order.
	Arches []string

	Premake premake.Target

	// Swig is the binding target. WordSize is resolved per
	// architecture with [Spec.SwigTarget].
	Swig swig.Target

	// Swig32Bit lists architectures bound with a 32-bit word size.
	Swig32Bit []string
}

// Configs are the supported build configurations, in build order.
var Configs = []string{"Debug", "Profile", "Release"}

// Platforms lists every platform in a stable order.
var Platforms = []Platform{
	Windows2017, Windows2019, Windows2022,
	Mac, IOS, TVOS, VisionOS,
	Android, Linux,
}

var windowsSwig = swig.Target{
	Variant:         swig.VariantBase,
	PlatformDefines: []string{"-D_WIN32", "-DWIN32", "-DAK_WIN"},
}

func appleDeviceSwig(sdk, define string) swig.Target {
	return swig.Target{
		Variant:         swig.VariantApple,
		PlatformDefines: []string{define},
		DLLImport:       "__Internal",
		AppleSDK:        sdk,
	}
}

// Lookup returns the spec of platform.
func Lookup(platform Platform) (Spec, bool) {
	switch platform {
	case Windows2017:
		return Spec{
			Platform:          platform,
			Kind:              KindVisualStudio,
			VisualStudioRange: "[15.0,16.0)",
			Premake:           premake.Target{OS: "windows", Generator: "vs2017"},
			Swig:              windowsSwig,
		}, true
	case Windows2019:
		return Spec{
			Platform:          platform,
			Kind:              KindVisualStudio,
			VisualStudioRange: "[16.0,17.0)",
			Premake:           premake.Target{OS: "windows", Generator: "vs2019"},
			Swig:              windowsSwig,
		}, true
	case Windows2022:
		return Spec{
			Platform:          platform,
			Kind:              KindVisualStudio,
			VisualStudioRange: "[17.0,18.0)",
			Premake:           premake.Target{OS: "windows", Generator: "vs2022"},
			Swig:              windowsSwig,
		}, true
	case Mac:
		return Spec{
			Platform: platform,
			Kind:     KindXcode,
			Premake:  premake.Target{OS: "macosx", Generator: "xcode4"},
			Swig:     swig.Target{Variant: swig.VariantApple, PlatformDefines: []string{"-DAK_MAC_OS_X"}, AppleSDK: "MacOSX"},
		}, true
	case IOS:
		return Spec{
			Platform: platform,
			Kind:     KindXcodeDevice,
			SDKs:     []SDK{{Name: "iphoneos"}, {Name: "iphonesimulator", Simulator: true}},
			Premake:  premake.Target{OS: "ios", Generator: "xcode4"},
			Swig:     appleDeviceSwig("iPhoneOS", "-DAK_IOS"),
		}, true
	case TVOS:
		return Spec{
			Platform: platform,
			Kind:     KindXcodeDevice,
			SDKs:     []SDK{{Name: "appletvos"}, {Name: "appletvsimulator", Simulator: true}},
			Premake:  premake.Target{OS: "tvos", Generator: "xcode4"},
			Swig:     appleDeviceSwig("AppleTVOS", "-DAK_TVOS"),
		}, true
	case VisionOS:
		return Spec{
			Platform: platform,
			Kind:     KindXcodeDevice,
			SDKs:     []SDK{{Name: "xros"}, {Name: "xrsimulator", Simulator: true}},
			Premake:  premake.Target{OS: "visionos", Generator: "xcode4"},
			Swig:     appleDeviceSwig("XROS", "-DAK_VISIONOS"),
		}, true
	case Android:
		return Spec{
			Platform:  platform,
			Kind:      KindMultiArch,
			Arches:    []string{"armeabi-v7a", "x86", "arm64-v8a", "x86_64"},
			Premake:   premake.Target{OS: "android", Generator: "androidmk"},
			Swig:      swig.Target{Variant: swig.VariantGCC, PlatformDefines: []string{"-D__ANDROID__", "-DAK_ANDROID"}},
			Swig32Bit: []string{"armeabi-v7a", "x86"},
		}, true
	case Linux:
		return Spec{
			Platform: platform,
			Kind:     KindMultiArch,
			Arches:   []string{"x86_64", "aarch64"},
			Premake:  premake.Target{OS: "linux", Generator: "gmake2"},
			Swig:     swig.Target{Variant: swig.VariantGCC, PlatformDefines: []string{"-D__linux__", "-DAK_LINUX"}},
		}, true
	}
	return Spec{}, false
}

// SwigTarget returns the binding target for arch, which is empty on
// single-architecture platforms.
func (s Spec) SwigTarget(arch string) swig.Target {
	target := s.Swig
	target.PlatformDefines = append([]string(nil), s.Swig.PlatformDefines...)
	target.WordSize = 64
	if slices.Contains(s.Swig32Bit, arch) {
		target.WordSize = 32
	}
	return target
}

// SupportsArch reports whether arch is one of the platform's
// architectures.
func (s Spec) SupportsArch(arch string) bool {
	return slices.Contains(s.Arches, arch)
}

// HostPlatforms returns the platforms that can be built on a host
// operating system, as named by runtime.GOOS.
func HostPlatforms(goos string) []Platform {
	switch goos {
	case "windows":
		return []Platform{Windows2017, Windows2019, Windows2022, Android}
	case "darwin":
		return []Platform{Mac, IOS, TVOS, VisionOS, Android}
	case "linux":
		return []Platform{Android, Linux}
	}
	return nil
}

// IsConfig reports whether name is a supported configuration.
func IsConfig(name string) bool {
	return slices.Contains(Configs, name)
}
