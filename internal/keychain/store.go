// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides the persistent key-value store that survives
// between CLI invocations. The session token lives here under KeyToken.
//
// Three backends are available: the OS keyring (macOS Keychain, Windows
// Credential Manager, Secret Service or pass on Linux), a private JSON file in
// the XDG state directory, and Redis for headless hosts that share a session.
// Every backend is safe for concurrent use, and deleting a missing key is not
// an error.
package keychain

import (
	"errors"
	"fmt"
	"path/filepath"

	"ragflow/cli/internal/config"
	"ragflow/cli/internal/xdg"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "ragflow"

// KeyToken is the single slot holding the raw bearer token.
const KeyToken = "token"

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("keychain: item not found")

// Store is a minimal string key-value store.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Open builds the store selected by the configuration.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "keyring":
		return NewManager()
	case "file":
		dir, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		return NewFileStore(filepath.Join(dir, "session.json")), nil
	case "redis":
		return NewRedisStore(cfg.RedisURL)
	default:
		return nil, fmt.Errorf("keychain: unknown backend %q", cfg.Backend)
	}
}
