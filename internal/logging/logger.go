// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// ParseLevel maps a config level name to a pterm log level.
// Unknown names fall back to DefaultLevel.
func ParseLevel(name string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "info":
		return pterm.LogLevelInfo
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "off", "disabled", "none":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelWarn
	}
}

// New builds the CLI logger writing to w (stderr when nil).
func New(level string, w io.Writer) *pterm.Logger {
	if w == nil {
		w = os.Stderr
	}
	return pterm.DefaultLogger.
		WithLevel(ParseLevel(level)).
		WithWriter(w)
}

// Discard returns a logger that drops everything; used by tests and as a nil fallback.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.
		WithLevel(pterm.LogLevelDisabled).
		WithWriter(io.Discard)
}
