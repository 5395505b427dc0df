// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides the CLI logger and utilities for secure logging.
// It includes functions for masking sensitive information in log messages and
// formatting errors for user-friendly display while protecting credentials and tokens.
//
// Anything that may echo a request or response body passes through Mask before
// it reaches the terminal.
package logging

import (
	"regexp"
)

var (
	rePassword = regexp.MustCompile(`(?i)(password=)([^\s;&]+)`)
	reToken    = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	reJSONPass = regexp.MustCompile(`(?i)("(?:password|token|access_token|accessToken|jwt)"\s*:\s*")([^"]*)(")`)
	reJWT      = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`)
	reURLCreds = regexp.MustCompile(`([A-Za-z][A-Za-z0-9+.-]*://[^:/@\s]*:)([^@\s/]+)(@)`)
)

// Mask replaces sensitive values in the input string with "***".
// JSON fields named password or token keep their key and lose their value,
// and URLs keep their user name but lose the password.
func Mask(s string) string {
	out := s
	out = reURLCreds.ReplaceAllString(out, "$1***$3")
	out = reJSONPass.ReplaceAllString(out, "${1}***${3}")
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJWT.ReplaceAllString(out, "***")
	return out
}
