// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"io"

	"github.com/pterm/pterm"

	"ragflow/cli/internal/backend"
	apperr "ragflow/cli/internal/errors"
	"ragflow/cli/internal/httperrors"
	"ragflow/cli/internal/keychain"
	"ragflow/cli/internal/logging"
	"ragflow/cli/internal/session"
)

// errReported signals that the user already saw a formatted message.
var errReported = errors.New("command failed")

// loginHint is the terminal's version of routing to the login page.
type loginHint struct{}

func (loginHint) Navigate(path string) {
	if path == session.LoginRoute {
		pterm.Info.Println("Run 'ragflow login' to sign in again.")
	}
}

// openSession builds the session for this invocation.
// The returned close function releases the store and must always be called.
func openSession() (*session.Session, func(), error) {
	store, err := keychain.Open(cfg.Store)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if c, ok := store.(io.Closer); ok {
			_ = c.Close()
		}
	}
	api := backend.New(cfg.APIURL, cfg.Timeout)
	return session.New(store, api, loginHint{}, session.WithLogger(logger)), closeStore, nil
}

// presentError turns a session error into terminal output.
// action reads as "while <action>", e.g. "logging in".
func presentError(err error, action string) error {
	switch apperr.KindOf(err) {
	case apperr.Unauthorized:
		pterm.Error.Println("The server rejected those credentials.")
		return errReported
	case apperr.InvalidInput:
		return err
	case apperr.RequestFailed:
		if httperrors.Classify(err) != httperrors.Generic || errors.Unwrap(err) != nil {
			return httperrors.FormatNetworkError(err, action, httperrors.ExtractHostFromURL(cfg.APIURL))
		}
	}
	return errors.New(logging.PresentError(action, err))
}
