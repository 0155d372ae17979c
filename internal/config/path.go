// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path. Both the
// database path and the model artifact path accept either form.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDataDir returns the directory holding the expense database and the
// trained classifier artifact, honoring XDG_DATA_HOME.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tracker")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "tracker")
}

// DefaultDBPath is where the expense database lives unless configured
// otherwise.
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "expenses.db")
}

// DefaultModelPath is where the trained classifier artifact lives unless
// configured otherwise.
func DefaultModelPath() string {
	return filepath.Join(DefaultDataDir(), "classifier.gob")
}
