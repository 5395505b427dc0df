// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"time"
)

// New creates the HTTP backend implementation for baseURL (for example
// "http://localhost:8080/api") with the default endpoint paths.
func New(baseURL string, timeout time.Duration) API {
	return newHTTP(baseURL, DefaultEndpoints(), timeout)
}

// NewChat creates the conversation client for baseURL.
func NewChat(baseURL string, timeout time.Duration) Chat {
	return newHTTP(baseURL, DefaultEndpoints(), timeout)
}
