package ports

import (
	"context"
	"iter"
)

// WatchEvent describes a file system change to a watched document.
type WatchEvent struct {
	Path string
}

// Watcher watches graph documents for changes so the CLI can re-render.
// Rapid successive events are expected to be coalesced by the consumer.
type Watcher interface {
	Start(ctx context.Context, path string) error
	Stop() error
	Events() iter.Seq[WatchEvent]
}
