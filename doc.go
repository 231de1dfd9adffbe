// Package notekeep is the composition root for the notekeep note store.
//
// It connects the note store (pkg/core) with the key-value storage adapters
// (pkg/adapters) using the Hexagonal Architecture pattern.
//
// The whole collection of notes lives under a single storage key as a JSON
// array, next to a monotonic id counter. Every operation reads the collection,
// changes it in memory and writes it back. Adapters only need to get, set and
// remove string values.
//
// Adapters:
//
//   - **fs** (default): one file per key under `.notekeep/`, atomic writes, a lock file and fsnotify watching.
//   - **memory**: process-local map, optional quota.
//   - **badger**: embedded BadgerDB.
//   - **sqlite**: a single-table SQLite database.
//
// Usage:
//
//	h, err := notekeep.Open("./notes", notekeep.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer h.Close()
//
//	note, err := h.CreateNote(ctx, notekeep.CreateInput{Title: "groceries", Tags: []string{"home"}})
package notekeep
