// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/akbuild/akbuild/lib/dedupe"
	"github.com/akbuild/akbuild/lib/process"
	"github.com/akbuild/akbuild/lib/toolexec"
)

var discard = slog.New(slog.DiscardHandler)

func TestRun_MissingArgument(t *testing.T) {
	runner := &toolexec.Recorder{}
	err := run(context.Background(), nil, &bytes.Buffer{}, runner, discard)

	var usage *dedupe.UsageError
	if !errors.As(err, &usage) {
		t.Fatalf("error = %v, want usage error", err)
	}
	if code := process.Report(&bytes.Buffer{}, err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if len(runner.Invocations()) != 0 {
		t.Errorf("ran %v", runner.Commands())
	}
}

func TestRun_DeviceLibrarySkipped(t *testing.T) {
	var stdout bytes.Buffer
	runner := &toolexec.Recorder{}

	err := run(context.Background(), []string{"/build/device/libFoo.a"}, &stdout, runner, discard)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(runner.Invocations()) != 0 {
		t.Errorf("ran %v", runner.Commands())
	}
	if !strings.Contains(stdout.String(), "nothing to do") {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestRun_SimulatorLibrary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Release-iphonesimulator")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	library := filepath.Join(dir, "libAkUnitySoundEngine.a")
	if err := os.WriteFile(library, []byte("!<arch>\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := &toolexec.Recorder{
		Handler: func(invocation toolexec.Invocation) (toolexec.Output, error) {
			switch {
			case invocation.Name == "lipo" && slices.Contains(invocation.Args, "-info"):
				return toolexec.Output{Stdout: "Architectures in the fat file: " + library + " are: x86_64 arm64\n"}, nil
			case invocation.Name == "ar" && invocation.Args[0] == "t":
				return toolexec.Output{Stdout: "stdafx.o\nstdafy.o\nAkSoundEngine.o\n"}, nil
			}
			return toolexec.Output{}, nil
		},
	}

	var stdout bytes.Buffer
	if err := run(context.Background(), []string{library}, &stdout, runner, discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := stdout.String(); got != "x86_64: removed 1 of 3 members\narm64: removed 1 of 3 members\n" {
		t.Errorf("output = %q", got)
	}

	removals := 0
	for _, invocation := range runner.Invocations() {
		if invocation.Name == "ar" && invocation.Args[0] == "d" {
			removals++
			if !slices.Equal(invocation.Args[2:], []string{"stdafy.o"}) {
				t.Errorf("removed %v, want [stdafy.o]", invocation.Args[2:])
			}
		}
	}
	if removals != 2 {
		t.Errorf("ran %d removals, want one per slice", removals)
	}
}

func TestRun_ThinSimulatorLibrarySkipped(t *testing.T) {
	library := filepath.Join(t.TempDir(), "Debug-iphonesimulator", "libAkUnitySoundEngine.a")
	if err := os.MkdirAll(filepath.Dir(library), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(library, []byte("!<arch>\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runner := &toolexec.Recorder{
		Handler: func(invocation toolexec.Invocation) (toolexec.Output, error) {
			if slices.Contains(invocation.Args, "-thin") {
				return toolexec.Output{}, toolexec.Failure(invocation, 1, "input file must be a fat file")
			}
			return toolexec.Output{Stdout: "Non-fat file: " + library + " is architecture: arm64\n"}, nil
		},
	}

	var stdout bytes.Buffer
	if err := run(context.Background(), []string{library}, &stdout, runner, discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if commands := runner.Commands(); len(commands) != 1 {
		t.Errorf("commands = %v, want only the architecture listing", commands)
	}
	if !strings.Contains(stdout.String(), dedupe.ReasonSingleArchitecture) {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestRun_ToolFailure(t *testing.T) {
	runner := &toolexec.Recorder{
		Handler: func(invocation toolexec.Invocation) (toolexec.Output, error) {
			return toolexec.Output{}, toolexec.Failure(invocation, 1, "lipo: can't open input file")
		},
	}
	library := filepath.Join(t.TempDir(), "Debug-xrsimulator", "libAkUnitySoundEngine.a")
	if err := os.MkdirAll(filepath.Dir(library), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(library, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	err := run(context.Background(), []string{library}, &bytes.Buffer{}, runner, discard)
	var invocationError *toolexec.ToolInvocationError
	if !errors.As(err, &invocationError) {
		t.Fatalf("error = %v, want tool invocation error", err)
	}
	var stderr bytes.Buffer
	if code := process.Report(&stderr, err); code != 1 || !strings.HasPrefix(stderr.String(), "error: ") {
		t.Errorf("report = %d, %q", code, stderr.String())
	}
}
