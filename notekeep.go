package notekeep

import (
	"log/slog"
	"time"

	"github.com/aretw0/notekeep/internal/platform"
	"github.com/aretw0/notekeep/pkg/core"
)

// --- Types ---

// Note is a public alias for the stored note record.
type Note = core.Note

// CreateInput is a public alias for the fields accepted by CreateNote.
type CreateInput = core.CreateInput

// UpdateInput is a public alias for the partial update accepted by UpdateNote.
type UpdateInput = core.UpdateInput

// Event is a public alias for a storage change notification.
type Event = core.Event

// Store is a public alias for the note store.
type Store = core.Store

// Storage is the key-value port every adapter implements.
type Storage = core.Storage

// Handle is an open store plus the resources behind it. Call Close when done.
type Handle = platform.Handle

// Config is the decoded content of a .notekeep.yaml file.
type Config = platform.FileConfig

var (
	ErrNotFound        = core.ErrNotFound
	ErrStorage         = core.ErrStorage
	ErrVersionConflict = core.ErrVersionConflict
	ErrReadOnly        = core.ErrReadOnly
)

// --- Configuration ---

// Option defines a functional option for configuring notekeep.
type Option = platform.Option

// WithAdapter selects the storage adapter by name ("fs", "memory", "badger", "sqlite").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithLogger sets the logger for the adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage allows injecting a custom storage adapter.
func WithStorage(storage core.Storage) Option {
	return platform.WithStorage(storage)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".notekeep").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithReadOnly opens the store without write access.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety toggles the `go run`/`go test` sandbox.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithEventBuffer allows specifying the size of the watch event buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithClock overrides the time source used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithKeys overrides the storage keys for the note collection and the id counter.
func WithKeys(notesKey, counterKey string) Option {
	return platform.WithKeys(notesKey, counterKey)
}

// --- Factory ---

// Open opens (creating if needed) a note store at uri.
func Open(uri string, opts ...Option) (*Handle, error) {
	return platform.Open(uri, opts...)
}

// Init prepares the storage at uri without keeping it open.
func Init(uri string, opts ...Option) error {
	return platform.Init(uri, opts...)
}

// NewStore wraps an existing storage directly, bypassing adapter selection.
func NewStore(storage core.Storage) *Store {
	return core.NewStore(storage)
}

// LoadConfig reads a .notekeep.yaml file.
func LoadConfig(path string) (*Config, error) {
	return platform.LoadConfig(path)
}

// FilterByTag returns the notes carrying tag.
func FilterByTag(notes []Note, tag string) []Note {
	return core.FilterByTag(notes, tag)
}

// --- Safety & Utils ---

// ResolveStorePath determines the actual path for the store based on safety rules.
func ResolveStorePath(userPath string, forceTemp bool) string {
	return platform.ResolveStorePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot recursively looks upwards for a store root indicator.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// ParseLevel maps a log level name ("debug", "info", "warn", "error") to slog.
func ParseLevel(name string) (slog.Level, error) {
	return platform.ParseLevel(name)
}

// TimestampLayout is the layout UpdatedAt is persisted with.
const TimestampLayout = core.TimestampLayout
