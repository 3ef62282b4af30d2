// Package config resolves the references directory and the paths derived
// from it, and reads the global configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// IndexDir holds derived data inside a references directory. Its leading
	// dot keeps it out of storage key listings.
	IndexDir = ".refcite"
	// IndexFile is the SQLite search index.
	IndexFile = "index.db"
	// DirEnv overrides the configured references directory.
	DirEnv = "REFCITE_DIR"
)

// ErrNoReferencesDir is returned when no references directory is configured.
var ErrNoReferencesDir = errors.New("no references directory configured")

// IndexDirPath returns the path to the .refcite directory of a references directory.
func IndexDirPath(dir string) string {
	return filepath.Join(dir, IndexDir)
}

// IndexPath returns the path to the search index of a references directory.
func IndexPath(dir string) string {
	return filepath.Join(dir, IndexDir, IndexFile)
}

// ResolveDir picks the references directory: the flag value if set, then
// $REFCITE_DIR, then references_dir from the global config. The result must
// be an existing directory.
func ResolveDir(flag string, cfg *GlobalConfig) (string, error) {
	dir := flag
	if dir == "" {
		dir = os.Getenv(DirEnv)
	}
	if dir == "" && cfg != nil {
		dir = cfg.ReferencesDir
	}
	if dir == "" {
		return "", ErrNoReferencesDir
	}

	dir = ExpandPath(dir)
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("references directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("references directory: %s is not a directory", dir)
	}
	return dir, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}

// HelpfulConfigMessage explains how to configure the references directory.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No references directory configured.

Use --dir, set $%s, or create %s:
  mkdir -p %s
  echo 'references_dir: /path/to/references' > %s`,
		DirEnv,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
