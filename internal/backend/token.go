// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/http"
	"strings"
)

// parseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns the token string without the "Bearer " prefix, or empty string if invalid format.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 {
		return ""
	}
	if !strings.EqualFold(v[:6], "bearer") || (v[6] != ' ' && v[6] != '\t') {
		return ""
	}
	return strings.TrimSpace(v[6:])
}

// findBearerTokenInHeaders looks for a Bearer token in the Authorization header.
func findBearerTokenInHeaders(h http.Header) string {
	for _, v := range h.Values("Authorization") {
		if t := parseBearerToken(v); t != "" {
			return t
		}
	}
	return ""
}

// extractAccessToken extracts the access token from the response payload.
// "token" is what the backend sends; the other names keep older servers working.
func extractAccessToken(result map[string]any) string {
	for _, key := range []string{"token", "access_token", "accessToken", "jwt"} {
		if v, ok := result[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if data, ok := result["data"].(map[string]any); ok {
		return extractAccessToken(data)
	}
	return ""
}
