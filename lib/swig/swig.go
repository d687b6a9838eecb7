// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package swig

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/akbuild/akbuild/lib/toolexec"
)

// WrapperFileName is the C++ wrapper SWIG writes into the platform
// source directory.
const WrapperFileName = "AkSoundEngine_wrap.cxx"

// windowsFallback is where the Windows SWIG installer puts swig when it
// is not on PATH.
const windowsFallback = `c:\swig\swig.exe`

// Variant selects the compiler defines passed to SWIG.
type Variant int

const (
	// VariantBase adds no compiler defines.
	VariantBase Variant = iota

	// VariantGCC defines the GCC version and class visibility support.
	VariantGCC

	// VariantApple is [VariantGCC] plus Apple platform defines, the Mac
	// include directory and the platform SDK include directory.
	VariantApple
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantBase:
		return "base"
	case VariantGCC:
		return "gcc"
	case VariantApple:
		return "apple"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

var gccDefines = []string{"-D__GNUC__=5", "-DGCC_HASCLASSVISIBILITY"}

var appleDefines = []string{
	"-D__APPLE__",
	"-DAK_APPLE",
	"-DAK_NEED_POSIX",
	"-DHAS_PRE_AK_TYPES_BINDING",
	"-DAKTYPESPATH=<AK/SoundEngine/Platforms/Mac/AkTypes.h>",
}

var noHelperDefines = []string{
	"-DSWIG_CSHARP_NO_EXCEPTION_HELPER",
	"-DSWIG_CSHARP_NO_WSTRING_HELPER",
	"-DSWIG_CSHARP_NO_STRING_HELPER",
	"-DSWIG_CSHARP_NO_WSTRING_EXCEPTION_HELPER",
}

// Target describes how one platform (and optionally one architecture)
// is bound.
type Target struct {
	Variant Variant

	// PlatformDefines are passed before the compiler defines. Apple
	// targets append these after the common Apple defines.
	PlatformDefines []string

	// WordSize is the target pointer width in bits. Zero means 64.
	WordSize int

	// DLLImport, when set, is passed as -dllimport.
	DLLImport string

	// AppleSDK is the platform SDK directory prefix, such as "MacOSX"
	// or "iPhoneOS". Apple targets only.
	AppleSDK string
}

// Paths are the files and directories one SWIG run reads and writes.
type Paths struct {
	// SDKInclude is the Wwise SDK include directory.
	SDKInclude string

	// PlatformInclude is the platform source directory.
	PlatformInclude string

	// MacInclude is the Mac source directory, added on Apple targets.
	MacInclude string

	// Wrapper is the C++ wrapper output file.
	Wrapper string

	// APIDir receives the generated C# files. Created if absent.
	APIDir string

	// Interface is the SWIG interface file.
	Interface string
}

// Request is one binding generation.
type Request struct {
	Target Target
	Paths  Paths

	// Env is added to the process environment of every command.
	Env []string

	// SDKRoot overrides Apple SDK discovery when set.
	SDKRoot string
}

// Generator runs SWIG.
type Generator struct {
	Runner toolexec.Runner

	// Swig is the SWIG executable. Empty means look it up on PATH.
	Swig string

	// XcodeSelect prints the active developer directory. Empty means
	// /usr/bin/xcode-select.
	XcodeSelect string

	Logger *slog.Logger
}

// Generate produces the binding described by request.
func (g *Generator) Generate(ctx context.Context, request Request) error {
	logger := g.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	swigPath, err := g.swigPath()
	if err != nil {
		return err
	}

	libraryQuery := toolexec.Invocation{Name: swigPath, Args: []string{"-swiglib"}, Env: request.Env}
	output, err := g.Runner.Run(ctx, libraryQuery)
	if err != nil {
		return fmt.Errorf("querying swig library directory: %w", err)
	}
	swigLib := strings.TrimSpace(output.Stdout)
	if swigLib == "" {
		return toolexec.Unparsable(libraryQuery, "empty library directory")
	}

	var sdkInclude string
	if request.Target.Variant == VariantApple {
		sdk, err := g.detectAppleSDK(ctx, request)
		if err != nil {
			return err
		}
		sdkInclude = filepath.Join(sdk.Root, "usr", "include")
		logger.Debug("using apple platform sdk", "sdk", sdk.Root, "version", sdk.Version)
	}

	if _, err := os.Stat(request.Paths.APIDir); os.IsNotExist(err) {
		logger.Info("creating api output directory", "dir", request.Paths.APIDir)
		if err := os.MkdirAll(request.Paths.APIDir, 0o755); err != nil {
			return fmt.Errorf("creating api output directory: %w", err)
		}
	}

	invocation := Command(swigPath, swigLib, request, sdkInclude)
	logger.Info("generating api binding", "interface", request.Paths.Interface, "out", request.Paths.APIDir)
	if _, err := g.Runner.Run(ctx, invocation); err != nil {
		return fmt.Errorf("generating api binding: %w", err)
	}
	return nil
}

// Command assembles the SWIG command line. sdkInclude is the
// discovered Apple SDK include directory, empty when not applicable.
func Command(swigPath, swigLib string, request Request, sdkInclude string) toolexec.Invocation {
	target := request.Target
	paths := request.Paths
	csharpModule := filepath.Join(swigLib, "csharp")

	args := []string{"-doxygen", "-o", paths.Wrapper}

	args = append(args,
		"-I"+paths.SDKInclude,
		"-I"+paths.PlatformInclude,
		"-I"+csharpModule,
	)
	if target.Variant == VariantApple {
		args = append(args, "-I"+paths.MacInclude)
		if sdkInclude != "" {
			args = append(args, "-I"+sdkInclude)
		}
	}

	args = append(args, "-l"+filepath.Join(csharpModule, "wchar.i"))

	if target.Variant == VariantApple {
		args = append(args, appleDefines...)
	}
	args = append(args, target.PlatformDefines...)
	if target.WordSize == 0 || target.WordSize == 64 {
		args = append(args, "-DAK_POINTER_64")
	}

	if target.Variant != VariantBase {
		args = append(args, gccDefines...)
	}
	args = append(args, noHelperDefines...)

	if target.DLLImport != "" {
		args = append(args, "-dllimport", target.DLLImport)
	}

	args = append(args, "-outdir", paths.APIDir, "-c++", "-csharp", paths.Interface)

	return toolexec.Invocation{Name: swigPath, Args: args, Env: request.Env}
}

func (g *Generator) swigPath() (string, error) {
	if g.Swig != "" {
		return g.Swig, nil
	}
	var fallbacks []string
	if runtime.GOOS == "windows" {
		fallbacks = append(fallbacks, windowsFallback)
	}
	path, err := toolexec.LookPath("swig", fallbacks...)
	if err != nil {
		return "", fmt.Errorf("swig not found, install it and add it to PATH: %w", err)
	}
	return path, nil
}
