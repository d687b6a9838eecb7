// Copyright 2026 The Akbuild Authors
// SPDX-License-Identifier: Apache-2.0

package buildlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/term"
)

// FileName is the log file name inside the log directory.
const FileName = "akbuild.log"

// ArchiveName is the compressed copy of the previous run's log.
const ArchiveName = FileName + ".1.zst"

// Options configures [Open].
type Options struct {
	// Dir is the log directory. Empty disables the log file.
	Dir string

	// Console receives human-facing output. Nil means os.Stderr.
	Console io.Writer

	// Verbose lowers the console level from info to debug.
	Verbose bool

	// DeleteLogs removes Dir before opening the new log.
	DeleteLogs bool
}

// Log is an open build log.
type Log struct {
	*slog.Logger

	file *os.File
}

// Open creates the logger described by options.
func Open(options Options) (*Log, error) {
	console := options.Console
	if console == nil {
		console = os.Stderr
	}

	consoleLevel := slog.LevelInfo
	if options.Verbose {
		consoleLevel = slog.LevelDebug
	}
	handlers := []slog.Handler{consoleHandler(console, consoleLevel)}

	log := &Log{}
	if options.Dir != "" {
		if options.DeleteLogs {
			if err := os.RemoveAll(options.Dir); err != nil {
				return nil, fmt.Errorf("deleting logs: %w", err)
			}
		}
		if err := os.MkdirAll(options.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}

		path := filepath.Join(options.Dir, FileName)
		if err := rotate(path, filepath.Join(options.Dir, ArchiveName)); err != nil {
			return nil, err
		}

		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		log.file = file
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	log.Logger = slog.New(fanout(handlers))
	return log, nil
}

// Path returns the log file path, or "" without a log file.
func (l *Log) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close flushes and closes the log file.
func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// consoleHandler picks text output for terminals and in-memory
// writers, JSON when stderr is piped or redirected.
func consoleHandler(w io.Writer, level slog.Level) slog.Handler {
	options := &slog.HandlerOptions{Level: level}
	if file, ok := w.(*os.File); ok && !term.IsTerminal(int(file.Fd())) {
		return slog.NewJSONHandler(w, options)
	}
	return slog.NewTextHandler(w, options)
}

// rotate compresses an existing log at path into archive.
func rotate(path, archive string) error {
	source, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening previous log: %w", err)
	}
	defer source.Close()

	destination, err := os.Create(archive)
	if err != nil {
		return fmt.Errorf("creating log archive: %w", err)
	}
	defer destination.Close()

	encoder, err := zstd.NewWriter(destination)
	if err != nil {
		return err
	}
	if _, err := io.Copy(encoder, source); err != nil {
		encoder.Close()
		return fmt.Errorf("compressing previous log: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("compressing previous log: %w", err)
	}
	return destination.Close()
}

// multiHandler sends each record to every handler that accepts its
// level.
type multiHandler []slog.Handler

func fanout(handlers []slog.Handler) slog.Handler {
	if len(handlers) == 1 {
		return handlers[0]
	}
	return multiHandler(handlers)
}

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range m {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range m {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make(multiHandler, len(m))
	for i, handler := range m {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return handlers
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	handlers := make(multiHandler, len(m))
	for i, handler := range m {
		handlers[i] = handler.WithGroup(name)
	}
	return handlers
}
