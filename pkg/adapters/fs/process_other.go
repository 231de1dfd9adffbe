//go:build !unix

package fs

import "os"

// processAlive reports whether pid names a running process.
// On Windows FindProcess opens a handle and fails for exited processes.
func processAlive(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	p.Release()
	return true
}
