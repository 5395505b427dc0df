// Package xdg provides helpers to resolve XDG Base Directory paths for ragflow.
// It implements the XDG Base Directory specification for determining appropriate
// locations for the configuration file and the file-backed token store.
//
// The package falls back to traditional locations when XDG environment
// variables are not set and keeps both directories private (0700).
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "ragflow"

// ConfigDir returns the XDG config directory for ragflow.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/ragflow when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return dir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for ragflow.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.local/state/ragflow when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return dir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func dir(env, fallback string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, fallback)
	}
	d := filepath.Join(base, AppName)
	if err := os.MkdirAll(d, 0o700); err != nil { // private dir
		return "", err
	}
	return d, nil
}
