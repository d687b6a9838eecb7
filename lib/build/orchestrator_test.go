// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/akbuild/akbuild/lib/preference"
)

func TestOrchestrator_Run(t *testing.T) {
	cfg := testConfig(t)
	runner := toolRunner()
	file := preference.Open(filepath.Join(t.TempDir(), "BuildPreferences.json"))

	orchestrator := &Orchestrator{Tools: Toolbox{Runner: runner, Config: cfg}, Preferences: file}
	request := Request{
		Platforms:         []Platform{Linux, "Amiga"},
		Settings:          Settings{Arches: []string{"x86_64"}, Configs: []string{"Release"}, SkipPremake: true},
		UpdatePreferences: true,
	}
	locations := Locations{
		WwiseSDK: preference.Location{Name: WwiseSDKVar, Path: "/sdk", FromCommandLine: true},
	}

	report, err := orchestrator.Run(context.Background(), request, locations)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if want := []string{"Amiga(UnsupportedPlatform)"}; !slices.Equal(report.Failed, want) {
		t.Errorf("failed = %v, want %v", report.Failed, want)
	}
	if want := []string{"Linux(x86_64, Release, default SDK version)"}; !slices.Equal(report.Succeeded, want) {
		t.Errorf("succeeded = %v, want %v", report.Succeeded, want)
	}
	if report.OK() {
		t.Error("report with an unsupported platform is OK")
	}

	for _, invocation := range runner.Invocations() {
		if !slices.Contains(invocation.Env, "WWISESDK=/sdk") {
			t.Errorf("%s env = %v, want WWISESDK", invocation, invocation.Env)
		}
	}

	value, ok, err := file.ReadField(WwiseSDKVar)
	if err != nil || !ok || value != "/sdk" {
		t.Errorf("preference WWISESDK = %q, %v, %v", value, ok, err)
	}
}

func TestOrchestrator_RunLeavesPreferencesAlone(t *testing.T) {
	file := preference.Open(filepath.Join(t.TempDir(), "BuildPreferences.json"))
	orchestrator := &Orchestrator{Tools: Toolbox{Runner: toolRunner(), Config: testConfig(t)}, Preferences: file}

	request := Request{
		Platforms: []Platform{Linux},
		Settings:  Settings{Arches: []string{"x86_64"}, Configs: []string{"Debug"}, SkipPremake: true},
	}
	locations := Locations{WwiseSDK: preference.Location{Name: WwiseSDKVar, Path: "/sdk", FromCommandLine: true}}
	if _, err := orchestrator.Run(context.Background(), request, locations); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, ok, _ := file.ReadField(WwiseSDKVar); ok {
		t.Error("preference written without an update request")
	}
}

func TestOrchestrator_RunAbortsOnPremakeFailure(t *testing.T) {
	runner := toolRunner("--os=android")
	orchestrator := &Orchestrator{Tools: Toolbox{Runner: runner, Config: testConfig(t)}}

	request := Request{
		Platforms: []Platform{Android, Linux},
		Settings:  Settings{Configs: []string{"Debug"}},
	}
	if _, err := orchestrator.Run(context.Background(), request, Locations{}); err == nil {
		t.Fatal("Run succeeded after a premake failure")
	}
	if commands := runner.Commands(); len(commands) != 1 {
		t.Errorf("commands = %v, want only the failed premake run", commands)
	}
}
