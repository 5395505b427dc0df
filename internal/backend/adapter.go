// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the client for the RagFlow authentication API.
// It defines the API contract for login and registration together with the
// typed payloads exchanged with the server, and an HTTP implementation.
package backend

import (
	"context"
	"strings"

	apperr "ragflow/cli/internal/errors"
)

// API defines backend operations the CLI depends on.
// Implementations may call the real HTTP endpoints or provide mocks for tests.
type API interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds Credentials) (LoginResponse, error)
	// Register creates a new account. The response body is ignored.
	Register(ctx context.Context, reg Registration) error
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate rejects credentials that the server could never accept.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return apperr.New(apperr.InvalidInput, "username is required")
	}
	if c.Password == "" {
		return apperr.New(apperr.InvalidInput, "password is required")
	}
	return nil
}

// Registration is the body of POST /auth/register.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// Validate rejects registrations missing required fields.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return apperr.New(apperr.InvalidInput, "username is required")
	}
	if r.Password == "" {
		return apperr.New(apperr.InvalidInput, "password is required")
	}
	if r.Email != "" && !strings.Contains(r.Email, "@") {
		return apperr.New(apperr.InvalidInput, "email is not valid")
	}
	return nil
}

// LoginResponse is the useful part of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}
