// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/akbuild/akbuild/lib/toolexec"
)

// ErrorCategory classifies command errors so that callers (scripts,
// the Unity editor) can react without parsing message text.
type ErrorCategory string

const (
	// CategoryValidation indicates invalid input: missing arguments,
	// unknown flags, unsupported platforms. Fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced file or directory does
	// not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryTool indicates an external tool (lipo, ar, xcodebuild,
	// swig) failed or produced output that could not be parsed.
	CategoryTool ErrorCategory = "tool"

	// CategoryInternal indicates an unexpected error.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by commands. It wraps the
// underlying error, preserving the chain for errors.Is and errors.As.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

// Error returns the underlying error message. The category is not
// included.
func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Classify returns err as a *ToolError, inferring the category from
// the chain when err is not already categorized. Returns nil for nil.
func Classify(err error) *ToolError {
	if err == nil {
		return nil
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return toolError
	}
	var invocationError *toolexec.ToolInvocationError
	switch {
	case errors.As(err, &invocationError):
		return &ToolError{Category: CategoryTool, Err: err}
	case errors.Is(err, fs.ErrNotExist):
		return &ToolError{Category: CategoryNotFound, Err: err}
	}
	return &ToolError{Category: CategoryInternal, Err: err}
}
