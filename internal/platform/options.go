package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/notekeep/pkg/core"
)

// options holds the internal configuration for opening a Note Store.
type options struct {
	storage   core.Storage
	logger    *slog.Logger
	adapter   string
	config    map[string]any
	storeOpts []core.StoreOption
}

// Option defines a functional option for configuring notekeep.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		config:  make(map[string]any),
	}
}

// WithAdapter selects the storage adapter by name: "fs" (default), "memory", "badger" or "sqlite".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithLogger sets the logger handed to adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage injects a custom storage. The adapter setting is then ignored.
// A storage implementing io.Closer is closed by Handle.Close.
func WithStorage(storage core.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

// WithSystemDir sets the hidden directory, under the store path, holding the data.
// Defaults to ".notekeep".
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithMustExist requires the store path to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly rejects every write with core.ErrReadOnly.
// Read-only stores skip directory creation and bypass the dev sandbox.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithForceTemp forces the store into a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true) the store is redirected to a temporary directory unless the
// path already lives there.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithEventBuffer sets the size of the watch event buffer. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback for errors raised inside the watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithClock overrides the store's time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.storeOpts = append(o.storeOpts, core.WithClock(now))
	}
}

// WithKeys overrides the storage keys used for the collection and the id counter.
func WithKeys(notesKey, counterKey string) Option {
	return func(o *options) {
		o.storeOpts = append(o.storeOpts, core.WithKeys(notesKey, counterKey))
	}
}
