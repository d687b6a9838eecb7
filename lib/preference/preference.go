// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

// Package preference reads and writes the build preference file: a
// JSON object, optionally with comments, mapping location variable
// names (WWISESDK, ANDROID_HOME, ANDROID_NDK_ROOT) to paths. The
// editor integration writes this file so that builds launched from
// the editor, which cannot pass environment variables, find the SDKs.
//
// [Resolve] implements the lookup order used for every location: an
// explicit command-line value, then the preference file, then the
// process environment.
package preference

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// File is a preference file at a fixed path.
type File struct {
	path string
}

// Open returns the preference file at path. The file need not exist.
func Open(path string) *File {
	return &File{path: path}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Fields returns every field in the file. A missing file yields an
// empty map.
func (f *File) Fields() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	stripped := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(stripped) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(stripped, &fields); err != nil {
		return nil, fmt.Errorf("parsing preference file %s: %w", f.path, err)
	}
	return fields, nil
}

// ReadField returns the value of name and whether it is set to a
// non-empty value.
func (f *File) ReadField(name string) (string, bool, error) {
	fields, err := f.Fields()
	if err != nil {
		return "", false, err
	}
	value, ok := fields[name]
	return value, ok && value != "", nil
}

// WriteField sets name to value, preserving other fields. Comments in
// an existing file are not preserved.
func (f *File) WriteField(name, value string) error {
	fields, err := f.Fields()
	if err != nil {
		return err
	}
	fields[name] = value

	// MarshalIndent writes map keys in sorted order.
	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating preference directory: %w", err)
	}

	temporary := f.path + ".tmp"
	if err := os.WriteFile(temporary, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(temporary, f.path)
}

// Location is a resolved SDK location.
type Location struct {
	// Name is the variable name, e.g. WWISESDK.
	Name string

	// Path is the resolved, existing directory.
	Path string

	// FromCommandLine is true when the value came from an explicit
	// command-line option.
	FromCommandLine bool
}

// Resolve finds the location named name. commandLineValue takes
// precedence when non-empty; otherwise the preference file and then
// the environment lookup function are consulted. The resolved path must
// exist. entity and option describe the location in error messages
// ("Wwise SDK folder", "-w").
func Resolve(file *File, name, commandLineValue, entity, option string, lookupEnv func(string) (string, bool), logger *slog.Logger) (Location, error) {
	location := Location{Name: name}

	switch {
	case commandLineValue != "":
		location.Path = commandLineValue
		location.FromCommandLine = true

	default:
		value, ok, err := file.ReadField(name)
		if err != nil {
			return location, err
		}
		if ok {
			logger.Warn("no location specified, falling back to preference",
				"entity", entity, "option", option, "preferences", file.Path(), "path", value)
			location.Path = value
			break
		}

		value, ok = lookupEnv(name)
		if !ok || value == "" {
			return location, fmt.Errorf("undefined environment variable: %s; use %s to specify the %s", name, option, entity)
		}
		logger.Warn("no location specified and no preference found, falling back to environment variable",
			"entity", entity, "option", option, "variable", name, "path", value)
		location.Path = value
	}

	if _, err := os.Stat(location.Path); err != nil {
		return location, fmt.Errorf("failed to find %s: %s", entity, location.Path)
	}
	return location, nil
}
