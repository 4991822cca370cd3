package ports

import (
	"context"
	"iter"
)

// WatchOp describes the kind of file system change observed.
type WatchOp uint8

const (
	// OpWrite indicates a file's content was modified.
	OpWrite WatchOp = iota
	// OpCreate indicates a file was created.
	OpCreate
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed.
	OpRename
)

// WatchEvent is a single observed file system change.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher defines the interface for observing changes to declared paths.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given paths. Events are delivered until the
	// context is canceled or Stop is called.
	Start(ctx context.Context, paths []string) error

	// Events returns an iterator over observed changes.
	Events() iter.Seq[WatchEvent]

	// Stop stops the watcher and releases its resources.
	Stop() error
}
