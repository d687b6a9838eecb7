// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"fmt"
	"os"
	"strings"
)

// Well-known location variables.
const (
	WwiseSDKVar   = "WWISESDK"
	AndroidSDKVar = "ANDROID_HOME"
	AndroidNDKVar = "ANDROID_NDK_ROOT"
)

// Env is an ordered set of environment variables added to the process
// environment of build commands. The zero value is empty and ready to
// use.
type Env struct {
	keys   []string
	values map[string]string
}

// Set assigns key, keeping its original position if already present.
func (e *Env) Set(key, value string) {
	if e.values == nil {
		e.values = make(map[string]string)
	}
	if _, exists := e.values[key]; !exists {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

// Get returns the value of key.
func (e Env) Get(key string) (string, bool) {
	value, ok := e.values[key]
	return value, ok
}

// Len returns the number of variables.
func (e Env) Len() int {
	return len(e.keys)
}

// Pairs returns the variables as KEY=VALUE strings in insertion order.
func (e Env) Pairs() []string {
	if len(e.keys) == 0 {
		return nil
	}
	pairs := make([]string, 0, len(e.keys))
	for _, key := range e.keys {
		pairs = append(pairs, key+"="+e.values[key])
	}
	return pairs
}

// With returns a copy of e overlaid with other. e is not modified.
func (e Env) With(other Env) Env {
	var merged Env
	for _, key := range e.keys {
		merged.Set(key, e.values[key])
	}
	for _, key := range other.keys {
		merged.Set(key, other.values[key])
	}
	return merged
}

// Lookup returns the value of key from e, falling back to the process
// environment.
func (e Env) Lookup(key string) string {
	if value, ok := e.Get(key); ok {
		return value
	}
	return os.Getenv(key)
}

// ParseToolchainEnv parses toolchain script output of the form
// KEY=VALUE,KEY=VALUE. Variable references in the output are expanded
// with lookup before splitting. Empty output yields an empty Env.
func ParseToolchainEnv(output string, lookup func(string) string) (Env, error) {
	var env Env
	expanded := strings.TrimSpace(os.Expand(output, lookup))
	if expanded == "" {
		return env, nil
	}
	for _, pair := range strings.Split(expanded, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return Env{}, fmt.Errorf("malformed toolchain variable %q", pair)
		}
		env.Set(key, strings.TrimSpace(value))
	}
	return env, nil
}
