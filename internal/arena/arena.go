// Package arena provides a scoped temp-file/resource owner: every
// concatenated file, decoded frame set, and fetched media blob the
// render pipeline creates is registered with an Arena and released on
// Close, so no artifact outlives the write phase that consumes it.
package arena

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Arena owns a set of temp files and directories for one pipeline run.
// It is safe for concurrent registration (the §4.4 bounded image fanout
// registers fetched/decoded artifacts from multiple goroutines).
type Arena struct {
	mu    sync.Mutex
	dir   string
	paths []string
	drops []func()
}

// New creates an Arena rooted at a fresh directory under the OS temp
// directory.
func New(prefix string) (*Arena, error) {
	dir, err := os.MkdirTemp("", prefix+"-*")
	if err != nil {
		return nil, fmt.Errorf("arena: creating temp dir: %w", err)
	}
	return &Arena{dir: dir}, nil
}

// Dir returns the arena's private temp directory, for components (like
// the video demuxer playlist) that need a scratch directory rather than
// individual files.
func (a *Arena) Dir() string {
	return a.dir
}

// NewFile creates a new file inside the arena's directory with the given
// name suffix (e.g. ".png") and registers it for cleanup.
func (a *Arena) NewFile(nameHint string) (*os.File, error) {
	f, err := os.CreateTemp(a.dir, "mcat-*-"+nameHint)
	if err != nil {
		return nil, fmt.Errorf("arena: creating file: %w", err)
	}
	a.mu.Lock()
	a.paths = append(a.paths, f.Name())
	a.mu.Unlock()
	return f, nil
}

// Track registers a path the arena does not own the creation of (e.g. an
// os.MkdirAll'd subdirectory) so it is still removed on Close.
func (a *Arena) Track(path string) {
	a.mu.Lock()
	a.paths = append(a.paths, path)
	a.mu.Unlock()
}

// Defer registers an arbitrary cleanup callback to run on Close, for
// non-filesystem resources (e.g. a deletion-protocol escape sequence
// that must be flushed before the encoder's output is abandoned).
func (a *Arena) Defer(fn func()) {
	a.mu.Lock()
	a.drops = append(a.drops, fn)
	a.mu.Unlock()
}

// Close releases every tracked path and runs deferred cleanups, in
// reverse registration order. Safe to call multiple times.
func (a *Arena) Close() error {
	a.mu.Lock()
	paths := a.paths
	drops := a.drops
	a.paths = nil
	a.drops = nil
	a.mu.Unlock()

	for i := len(drops) - 1; i >= 0; i-- {
		drops[i]()
	}
	for i := len(paths) - 1; i >= 0; i-- {
		_ = os.RemoveAll(paths[i])
	}
	return os.RemoveAll(a.dir)
}

// JoinNew returns a path under the arena directory without creating the
// file, for components (the video tool) that need a path to pass to an
// external process's -o flag.
func (a *Arena) JoinNew(name string) string {
	path := filepath.Join(a.dir, name)
	a.Track(path)
	return path
}
