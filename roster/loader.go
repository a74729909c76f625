package roster

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Loader fetches and normalizes the roster and publishes the result.
// Loads are serialized; readers never block on a load in progress.
type Loader struct {
	source  Source
	mu      sync.Mutex
	current atomic.Pointer[Directory]
}

func NewLoader(source Source) *Loader {
	l := &Loader{source: source}
	l.current.Store(NewDirectory(nil))
	return l
}

// Load fetches the roster now. On failure it returns an empty directory and
// the error, and keeps the previously published directory.
func (l *Loader) Load(ctx context.Context) (*Directory, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.source.Fetch(ctx)
	if err != nil {
		slog.Error("roster fetch failed", "error", err)
		return NewDirectory(nil), fmt.Errorf("failed to load roster: %w", err)
	}

	dir := NewDirectory(Normalize(rows))
	l.current.Store(dir)
	slog.Info("roster loaded", "rows", len(rows), "sponsors", dir.Len())

	return dir, nil
}

// Directory returns the published directory, fetching first if it is empty.
func (l *Loader) Directory(ctx context.Context) (*Directory, error) {
	if dir := l.current.Load(); !dir.Empty() {
		return dir, nil
	}
	return l.Load(ctx)
}

// Current returns the published directory without fetching. Never nil.
func (l *Loader) Current() *Directory {
	return l.current.Load()
}
