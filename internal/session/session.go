// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session holds the client-side authentication state for the CLI:
// the bearer token, the locally known user and the derived authenticated flag.
//
// A Session is an explicit object built by the caller from a token store, a
// backend API and a Navigator; nothing in this package is global. The token
// survives between runs through the store, the user record lives in memory
// only and is never confirmed by the server.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/pterm/pterm"
	"golang.org/x/sync/singleflight"

	"ragflow/cli/internal/backend"
	apperr "ragflow/cli/internal/errors"
	"ragflow/cli/internal/keychain"
	"ragflow/cli/internal/logging"
)

// LoginRoute is where Logout sends the client.
const LoginRoute = "/login"

// Navigator moves the client to another route once the session changes.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// User is the minimal profile recorded on login.
type User struct {
	Username string
}

// Session is the single source of truth for "is this client logged in".
// It is safe for concurrent use.
type Session struct {
	store  keychain.Store
	api    backend.API
	nav    Navigator
	logger *pterm.Logger

	mu       sync.RWMutex
	token    string
	hasToken bool
	user     *User

	inflight singleflight.Group
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l *pterm.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds a Session and loads the persisted token from store.
// A store read failure is logged and the session starts unauthenticated.
// No network call is made and the token is not validated.
func New(store keychain.Store, api backend.API, nav Navigator, opts ...Option) *Session {
	s := &Session{
		store:  store,
		api:    api,
		nav:    nav,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	token, err := store.Get(keychain.KeyToken)
	switch {
	case err == nil:
		s.token, s.hasToken = token, true
		s.logger.Debug("restored session token from store")
	case errors.Is(err, keychain.ErrNotFound):
		s.logger.Debug("no stored session token")
	default:
		s.logger.Warn("could not read stored session token", s.logger.Args("error", logging.Mask(err.Error())))
	}
	return s
}

// Token returns the bearer token and whether one is present.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.hasToken
}

// User returns a copy of the locally recorded user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a token is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasToken
}

// Login exchanges creds for a token. On success the token is persisted, kept
// in memory and the user is set to creds.Username. On failure the error is
// logged and returned, and the session keeps its previous token and user.
//
// Concurrent calls with identical credentials share one request. The shared
// request is detached from any single caller's cancellation and is bounded by
// the backend client timeout; each caller stops waiting when its own ctx ends.
func (s *Session) Login(ctx context.Context, creds backend.Credentials) error {
	shared := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(flightKey(creds), func() (any, error) {
		return nil, s.login(shared, creds)
	})
	select {
	case res := <-ch:
		if res.Shared {
			s.logger.Debug("login coalesced with a request already in flight", s.logger.Args("username", creds.Username))
		}
		return res.Err
	case <-ctx.Done():
		err := apperr.Wrap(apperr.RequestFailed, "login abandoned", ctx.Err())
		s.logFailure("login", err)
		return err
	}
}

func (s *Session) login(ctx context.Context, creds backend.Credentials) error {
	if err := creds.Validate(); err != nil {
		s.logFailure("login", err)
		return err
	}

	s.logger.Debug("sending login request", s.logger.Args("username", creds.Username))
	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		s.logFailure("login", err)
		return err
	}

	if err := s.store.Set(keychain.KeyToken, resp.Token); err != nil {
		err = apperr.Wrap(apperr.StorageFailed, "save session token", err)
		s.logFailure("login", err)
		return err
	}

	s.mu.Lock()
	s.token, s.hasToken = resp.Token, true
	s.user = &User{Username: creds.Username}
	s.mu.Unlock()

	s.logger.Info("logged in", s.logger.Args("username", creds.Username))
	return nil
}

// Register creates an account. It never changes the session; the new user
// still has to log in.
func (s *Session) Register(ctx context.Context, reg backend.Registration) error {
	if err := reg.Validate(); err != nil {
		s.logFailure("registration", err)
		return err
	}
	s.logger.Debug("sending registration request", s.logger.Args("username", reg.Username))
	if err := s.api.Register(ctx, reg); err != nil {
		s.logFailure("registration", err)
		return err
	}
	s.logger.Info("registered", s.logger.Args("username", reg.Username))
	return nil
}

// Logout clears the token and user, removes the persisted token and
// navigates to LoginRoute. It makes no network call and cannot fail; a store
// error is only logged.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token, s.hasToken = "", false
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Delete(keychain.KeyToken); err != nil {
		s.logger.Warn("could not remove stored session token", s.logger.Args("error", logging.Mask(err.Error())))
	}
	s.logger.Debug("logged out")

	if s.nav != nil {
		s.nav.Navigate(LoginRoute)
	}
}

func (s *Session) logFailure(op string, err error) {
	s.logger.Error(op+" failed", s.logger.Args(
		"kind", string(apperr.KindOf(err)),
		"error", logging.Mask(err.Error()),
	))
}

// flightKey identifies identical credentials without keeping the password around.
func flightKey(c backend.Credentials) string {
	sum := sha256.Sum256([]byte(c.Username + "\x00" + c.Password))
	return hex.EncodeToString(sum[:])
}
