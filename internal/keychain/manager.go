// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// Manager provides thread-safe operations on the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager creates a new keychain manager with the OS keyring opened.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return NewManagerWithRing(ring), nil
}

// NewManagerWithRing wraps an already opened keyring.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// openRing opens the OS keyring using native platform backends only.
// There is no encrypted-file fallback; use the file store backend instead.
func openRing() (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		// pass is the fallback where the login keychain is unavailable
		allowedBackends = []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.PassBackend,
		}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		allowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
		}
	}

	cfg := keyring.Config{
		ServiceName:             ServiceName,
		AllowedBackends:         allowedBackends,
		PassPrefix:              ServiceName,
		LibSecretCollectionName: ServiceName,
		KWalletAppID:            ServiceName,
		KWalletFolder:           ServiceName,
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if errors.Is(err, keyring.ErrNoAvailImpl) {
			return nil, errors.New("no OS keyring available; set store.backend to \"file\" (ragflow config set store.backend file)")
		}
		return nil, err
	}
	return ring, nil
}

// Get retrieves a value from the keychain.
// This method is thread-safe.
func (m *Manager) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if len(it.Data) == 0 {
		return "", ErrNotFound
	}
	return string(it.Data), nil
}

// Set stores a value in the keychain.
// This method is thread-safe.
func (m *Manager) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: ServiceName + " " + key,
	})
}

// Delete removes a value from the keychain.
// This method is thread-safe.
func (m *Manager) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
