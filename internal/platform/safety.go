package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// devSandboxDir is the namespace, under the system temp dir, for sandboxed stores.
const devSandboxDir = "notekeep-dev"

// IsDevRun reports whether the process was started by `go run` or `go test`.
// Both build their binaries under the system temp directory.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}
	return isWithin(os.TempDir(), exe)
}

// ResolveStorePath returns the directory a store should really use.
// Without sandboxing the user path is kept ("" means the working directory).
// With sandboxing, paths already under the temp dir are trusted and anything
// else is re-rooted into a namespaced temp directory named after its base.
func ResolveStorePath(userPath string, sandbox bool) string {
	if !sandbox {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	clean := filepath.Clean(userPath)
	if userPath != "" && isWithin(os.TempDir(), clean) {
		return clean
	}

	name := filepath.Base(clean)
	if userPath == "" || name == "." || name == ".." || name == string(os.PathSeparator) {
		name = "default"
	}
	return filepath.Join(os.TempDir(), devSandboxDir, name)
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}
