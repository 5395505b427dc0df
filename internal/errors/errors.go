// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so callers can decide how to present a failure
// (wrong password, unreachable server, bad response) instead of receiving a bare flag.
//
// The package supports wrapping underlying errors while maintaining error kind information.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// RequestFailed indicates a network failure or a non-success HTTP status.
	RequestFailed Kind = "request_failed"
	// Unauthorized indicates the backend rejected the supplied credentials.
	Unauthorized Kind = "unauthorized"
	// MalformedResponse indicates a success status with an unusable body.
	MalformedResponse Kind = "malformed_response"
	// InvalidInput indicates the request was rejected before being sent.
	InvalidInput Kind = "invalid_input"
	// StorageFailed indicates the persistent token store could not be written.
	StorageFailed Kind = "storage_failed"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the outermost *E in err's chain, or "" when none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
