// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"build", "build", 0},
		{"biuld", "build", 2},
		{"dedup", "dedupe", 1},
		{"kitten", "sitting", 3},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "build"}, {Name: "binding"}, {Name: "dedupe"}, {Name: "version"}}
	tests := map[string]string{
		"biuld":      "build",
		"bindings":   "binding",
		"versoin":    "version",
		"completely": "",
	}
	for input, want := range tests {
		if got := suggestCommand(input, commands); got != want {
			t.Errorf("suggestCommand(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("build", pflag.ContinueOnError)
	flagSet.Bool("multi-sdk", false, "")
	flagSet.String("wwise-sdk", "", "")

	if got := suggestFlag([]string{"--wwise-sdk", "/sdk", "--multisdk"}, flagSet); got != "--multi-sdk" {
		t.Errorf("suggestFlag = %q, want --multi-sdk", got)
	}
	if got := suggestFlag([]string{"--nothing-like-it"}, flagSet); got != "" {
		t.Errorf("suggestFlag = %q, want none", got)
	}
}
