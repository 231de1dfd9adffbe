package platform

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/notekeep/pkg/adapters/badgerdb"
	"github.com/aretw0/notekeep/pkg/adapters/fs"
	"github.com/aretw0/notekeep/pkg/adapters/memory"
	"github.com/aretw0/notekeep/pkg/adapters/sqlite"
	"github.com/aretw0/notekeep/pkg/core"
)

// Handle is an open Note Store together with the resources backing it.
type Handle struct {
	*core.Store
	closer io.Closer
}

// Close releases the storage (database handles). It is safe to call on any adapter.
func (h *Handle) Close() error {
	if h.closer == nil {
		return nil
	}
	return h.closer.Close()
}

// Open builds the storage selected by opts and wraps it in a Note Store.
// The uri argument is adapter-specific: the store root directory for "fs",
// "badger" and "sqlite", ignored for "memory".
//
//	h, err := notekeep.Open("./notes", notekeep.WithAdapter("badger"))
func Open(uri string, opts ...Option) (*Handle, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	storage, closer, err := initStorage(uri, o)
	if err != nil {
		return nil, err
	}

	if o.logger != nil {
		o.logger.Debug("note store opened", "adapter", o.adapter, "uri", uri)
	}
	return &Handle{Store: core.NewStore(storage, o.storeOpts...), closer: closer}, nil
}

// Init prepares the storage (directories, database files) without opening a store.
func Init(uri string, opts ...Option) error {
	h, err := Open(uri, opts...)
	if err != nil {
		return err
	}
	return h.Close()
}

func initStorage(uri string, o *options) (core.Storage, io.Closer, error) {
	if o.storage != nil {
		closer, _ := o.storage.(io.Closer)
		return o.storage, closer, nil
	}

	switch o.adapter {
	case "memory":
		return memory.New(), nil, nil
	case "fs":
		s, err := initFS(uri, o)
		return s, nil, err
	case "badger":
		dir, err := prepareDataDir(uri, o)
		if err != nil {
			return nil, nil, err
		}
		s, err := badgerdb.Open(badgerdb.Config{
			Path:     filepath.Join(dir, "badger"),
			ReadOnly: boolConfig(o, "read_only", false),
			Logger:   o.logger,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case "sqlite":
		dir, err := prepareDataDir(uri, o)
		if err != nil {
			return nil, nil, err
		}
		s, err := sqlite.Open(filepath.Join(dir, "notes.db"), boolConfig(o, "read_only", false), o.logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(path string, o *options) (core.Storage, error) {
	resolvedPath := resolvePath(path, o)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))
	eventBuffer, _ := o.config["event_buffer"].(int)

	s := fs.NewStorage(fs.Config{
		Path:         resolvedPath,
		SystemDir:    systemDir(o),
		MustExist:    boolConfig(o, "must_exist", false),
		ReadOnly:     boolConfig(o, "read_only", false),
		EventBuffer:  eventBuffer,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
	if err := s.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// prepareDataDir resolves the store root and makes sure its system directory exists.
func prepareDataDir(path string, o *options) (string, error) {
	resolvedPath := resolvePath(path, o)
	dir := filepath.Join(resolvedPath, systemDir(o))

	if boolConfig(o, "must_exist", false) || boolConfig(o, "read_only", false) {
		if _, err := os.Stat(dir); err != nil {
			return "", fmt.Errorf("store does not exist at %s: %w", resolvedPath, err)
		}
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create store directory: %w", err)
	}
	return dir, nil
}

// resolvePath applies the dev sandbox rules and logs the outcome.
func resolvePath(path string, o *options) string {
	readOnly := boolConfig(o, "read_only", false)
	devSafety := boolConfig(o, "dev_safety", true)
	bypassSafety := readOnly || !devSafety

	useTemp := boolConfig(o, "temp_dir", false) || (IsDevRun() && !bypassSafety)
	resolved := ResolveStorePath(path, useTemp)

	if o.logger != nil && useTemp && resolved != path {
		o.logger.Warn("running in SAFE MODE (dev/test sandbox)", "original_path", path, "resolved_path", resolved)
	}
	return resolved
}

func systemDir(o *options) string {
	if dir, _ := o.config["system_dir"].(string); dir != "" {
		return dir
	}
	return fs.DefaultSystemDir
}

func boolConfig(o *options, key string, def bool) bool {
	if v, ok := o.config[key].(bool); ok {
		return v
	}
	return def
}
