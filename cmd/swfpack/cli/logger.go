// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// Log formats accepted by [NewLogger].
const (
	LogFormatAuto = "auto"
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// NewLogger creates a structured logger writing to w. The auto format
// uses slog.TextHandler when w is a terminal and slog.JSONHandler
// otherwise (CI, scripts, pipes), so piped output stays machine
// parseable.
//
// Callers scope the logger with command-specific context via With():
//
//	logger = logger.With("command", "build", "scene", path)
func NewLogger(w io.Writer, level slog.Level, format string) (*slog.Logger, error) {
	options := &slog.HandlerOptions{Level: level}

	if format == LogFormatAuto {
		format = LogFormatJSON
		if isTerminal(w) {
			format = LogFormatText
		}
	}

	switch format {
	case LogFormatText:
		return slog.New(slog.NewTextHandler(w, options)), nil
	case LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, options)), nil
	}
	return nil, fmt.Errorf("unknown log format %q (want %s, %s, or %s)",
		format, LogFormatAuto, LogFormatText, LogFormatJSON)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
