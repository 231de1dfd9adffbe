package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNotFound         = errors.New("note not found")
	ErrStorage          = errors.New("storage failure")
	ErrVersionConflict  = errors.New("version conflict")
	ErrReadOnly         = errors.New("storage is in read-only mode")
	ErrWatchUnsupported = errors.New("storage does not support watching")
)

// NotFoundError reports that no note carries the requested id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("note not found: %d", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StorageError is returned by adapters when the backing store rejects a read or write.
type StorageError struct {
	Op  string // get, set, remove, encode, lock
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStorage) hold.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// VersionConflictError is returned when UpdateInput.IfVersion does not match the stored note.
type VersionConflictError struct {
	ID       int64
	Expected int64
	Actual   int64
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version conflict on note %d: expected %d, found %d", e.ID, e.Expected, e.Actual)
}

// Is makes errors.Is(err, ErrVersionConflict) hold.
func (e *VersionConflictError) Is(target error) bool { return target == ErrVersionConflict }
