// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"slices"
	"testing"
)

type sampleParams struct {
	JSONOutput
	Platforms []string `flag:"platforms,p" desc:"platforms"`
	Configs   []string `flag:"configs,c" desc:"configs" default:"Debug,Release"`
	Verbose   bool     `flag:"verbose,V" desc:"verbose"`
	Vers      string   `flag:"toolchain-vers-filename,t" desc:"vers" default:"ToolchainVers.txt"`
	Jobs      int      `flag:"jobs" desc:"jobs" default:"4"`
	Ignored   string
}

func TestFlagsFromParams(t *testing.T) {
	var params sampleParams
	flagSet := FlagsFromParams("sample", &params)

	if params.Vers != "ToolchainVers.txt" || params.Jobs != 4 {
		t.Errorf("defaults not applied: %+v", params)
	}
	if !slices.Equal(params.Configs, []string{"Debug", "Release"}) {
		t.Errorf("configs default = %v", params.Configs)
	}

	args := []string{"-p", "Android", "--platforms", "Linux", "-V", "--json", "-t", "Other.txt", "extra"}
	if err := flagSet.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !slices.Equal(params.Platforms, []string{"Android", "Linux"}) {
		t.Errorf("platforms = %v", params.Platforms)
	}
	if !params.Verbose || !params.OutputJSON || params.Vers != "Other.txt" {
		t.Errorf("params = %+v", params)
	}
	if !slices.Equal(flagSet.Args(), []string{"extra"}) {
		t.Errorf("args = %v", flagSet.Args())
	}
	if flagSet.Lookup("Ignored") != nil || flagSet.Lookup("ignored") != nil {
		t.Error("untagged field bound")
	}
}

func TestBindFlags_RejectsNonPointer(t *testing.T) {
	if err := BindFlags(sampleParams{}, nil); err == nil {
		t.Fatal("expected an error for a non-pointer")
	}
}

func TestBindFlags_RejectsUnsupportedType(t *testing.T) {
	var params struct {
		Ratio float32 `flag:"ratio"`
	}
	if err := BindFlags(&params, FlagsFromParams("empty", &struct{}{})); err == nil {
		t.Fatal("expected an error for float32")
	}
}
