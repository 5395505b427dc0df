// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrCorrupt reports a store file that exists but cannot be parsed.
// Set and Delete treat such a file as empty and replace or remove it.
var ErrCorrupt = errors.New("store file is corrupt")

// FileStore keeps values in a private JSON object on disk.
// It is meant for hosts without an OS keyring; the file is not encrypted.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the JSON file at path.
// The file is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	items := map[string]string{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	return items, nil
}

// write replaces the file atomically via a temp file in the same directory.
func (f *FileStore) write(items map[string]string) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// Get retrieves a value from the file.
func (f *FileStore) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return "", err
	}
	v, ok := items[key]
	if !ok || v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores a value in the file.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	switch {
	case errors.Is(err, ErrCorrupt):
		items = map[string]string{}
	case err != nil:
		return err
	}
	items[key] = value
	return f.write(items)
}

// Delete removes a value from the file. The file is removed once empty.
func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	switch {
	case errors.Is(err, ErrCorrupt):
		return f.remove()
	case err != nil:
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	if len(items) == 0 {
		return f.remove()
	}
	return f.write(items)
}

func (f *FileStore) remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
