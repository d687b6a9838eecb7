// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/akbuild/akbuild/cmd/akbuild/cli"
)

func TestBinding_EveryArch(t *testing.T) {
	w := newWorkspace(t)
	var stdout bytes.Buffer
	runner := scriptedTools()

	err := bindingCommand(testDeps(&stdout, runner, nil)).Execute(context.Background(), []string{
		"Linux", "--config", w.config, "-w", w.sdk, "--json",
	})
	if err != nil {
		t.Fatalf("binding: %v", err)
	}

	var results []bindingResult
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("decoding results %q: %v", stdout.String(), err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v, want one per arch", results)
	}
	for i, arch := range []string{"x86_64", "aarch64"} {
		if results[i].Arch != arch || !results[i].Success {
			t.Errorf("results[%d] = %+v, want success for %s", i, results[i], arch)
		}
		if filepath.Base(results[i].APIDir) != arch {
			t.Errorf("results[%d].APIDir = %s", i, results[i].APIDir)
		}
	}

	// Each arch queries the library directory and then generates.
	invocations := runner.Invocations()
	if len(invocations) != 4 {
		t.Fatalf("invocations = %v", runner.Commands())
	}
	generate := invocations[1]
	if generate.Name != "swig" || !slices.Contains(generate.Args, "-csharp") {
		t.Errorf("generate = %s", generate)
	}
	if !slices.Contains(generate.Args, "-I"+filepath.Join(w.sdk, "include")) {
		t.Errorf("generate args %v lack the SDK include directory", generate.Args)
	}
}

func TestBinding_Failure(t *testing.T) {
	w := newWorkspace(t)
	var stdout bytes.Buffer
	runner := scriptedTools("-csharp")

	err := bindingCommand(testDeps(&stdout, runner, nil)).Execute(context.Background(), []string{
		"Linux", "--config", w.config, "-w", w.sdk, "-a", "x86_64",
	})
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) || exitError.Code != 1 {
		t.Fatalf("error = %v, want exit code 1", err)
	}
	if !bytes.Contains(stdout.Bytes(), []byte("FAILED")) {
		t.Errorf("output = %q", stdout.String())
	}
}

func TestBinding_RejectsArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no platform", nil},
		{"unknown platform", []string{"Switch"}},
		{"arch on single-arch platform", []string{"Windows_vc170", "-a", "x86_64"}},
		{"unknown arch", []string{"Android", "-a", "mips"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := newWorkspace(t)
			var stdout bytes.Buffer
			runner := scriptedTools()

			args := append([]string{"--config", w.config, "-w", w.sdk}, test.args...)
			err := bindingCommand(testDeps(&stdout, runner, nil)).Execute(context.Background(), args)
			if !isValidation(err) {
				t.Errorf("error = %v, want validation", err)
			}
			if len(runner.Invocations()) != 0 {
				t.Errorf("ran %v", runner.Commands())
			}
		})
	}
}
