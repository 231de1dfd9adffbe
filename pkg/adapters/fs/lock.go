package fs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aretw0/notekeep/pkg/core"
)

// LockFileName is created exclusively inside the system directory while a writer holds the lock.
const LockFileName = ".lock"

const (
	lockPollInterval = 10 * time.Millisecond
	// A lock file without a readable PID is only trusted for this long.
	unreadableLockTTL = 10 * time.Second
)

// Lock implements core.Locker with an exclusively created lock file holding the owner's PID.
// It blocks until the lock is acquired or ctx is done. A lock left behind by a
// process that no longer exists is broken and taken over.
// A read-only storage never writes, so it hands out a no-op lock.
func (s *Storage) Lock(ctx context.Context) (func(), error) {
	if s.config.ReadOnly {
		return func() {}, nil
	}

	lockPath := filepath.Join(s.dir, LockFileName)

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return func() {
				if err := os.Remove(lockPath); err != nil && s.config.Logger != nil {
					s.config.Logger.Warn("failed to release lock", "path", lockPath, "error", err)
				}
			}, nil
		}

		if !os.IsExist(err) {
			return nil, &core.StorageError{Op: "lock", Key: LockFileName, Err: err}
		}

		if s.breakStaleLock(lockPath) {
			continue
		}

		select {
		case <-ctx.Done():
			return nil, &core.StorageError{Op: "lock", Key: LockFileName, Err: ctx.Err()}
		case <-time.After(lockPollInterval):
		}
	}
}

// breakStaleLock removes the lock file when its owner is gone and reports whether it did.
func (s *Storage) breakStaleLock(lockPath string) bool {
	content, err := os.ReadFile(lockPath)
	if err != nil {
		// Released in the meantime: retry right away.
		return os.IsNotExist(err)
	}
	if !lockIsStale(lockPath, content) {
		return false
	}

	// Move the file aside first so that only one waiter breaks it, then make
	// sure what was moved is still the stale lock and not a fresh one.
	aside := fmt.Sprintf("%s.stale-%d", lockPath, os.Getpid())
	if err := os.Rename(lockPath, aside); err != nil {
		return os.IsNotExist(err)
	}
	moved, err := os.ReadFile(aside)
	if err == nil && !bytes.Equal(moved, content) {
		// Someone acquired the lock between our read and the rename: give it back.
		_ = os.Link(aside, lockPath)
		os.Remove(aside)
		return false
	}
	os.Remove(aside)

	if s.config.Logger != nil {
		s.config.Logger.Warn("broke stale lock", "path", lockPath, "owner", string(bytes.TrimSpace(content)))
	}
	return true
}

func lockIsStale(lockPath string, content []byte) bool {
	pid, err := strconv.Atoi(string(bytes.TrimSpace(content)))
	if err != nil || pid <= 0 {
		// Possibly caught between create and write; judge by age.
		info, statErr := os.Stat(lockPath)
		return statErr == nil && time.Since(info.ModTime()) > unreadableLockTTL
	}
	return !processAlive(pid)
}
