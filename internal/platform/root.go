package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFileName is the per-store configuration file looked up by the CLI.
const ConfigFileName = ".notekeep.yaml"

// ErrRootNotFound is returned by FindRoot when no marker exists up to the filesystem root.
var ErrRootNotFound = errors.New("root not found")

// FindRoot walks upwards from startDir looking for a store root.
// A directory is a root when it holds the .notekeep system directory or a .notekeep.yaml file.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ".notekeep") || hasFile(dir, ConfigFileName) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrRootNotFound
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
