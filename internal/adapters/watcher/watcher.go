// Package watcher implements ports.Watcher over fsnotify, resolving each
// raw file-system event to the workspace it belongs to, filtering it
// against that workspace's target source globs, and coalescing bursts
// into debounced batches.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/same/internal/core/domain"
	"go.trai.ch/same/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

// skipDirectories are directories never worth recursing into.
var skipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

const eventChannelBuffer = 256

// Watcher implements ports.Watcher using one recursive fsnotify watch per
// workspace root named in the plan passed to Watch.
type Watcher struct {
	graph *domain.WorkspaceGraph

	mu        sync.Mutex
	fsWatcher *fsnotify.Watcher
	cancel    context.CancelFunc
	roots     map[string]string   // workspace root (cleaned) -> workspace name
	globs     map[string][]string // workspace name -> absolute source glob patterns for the watched target
}

// NewWatcher creates a Watcher that resolves changed paths against graph's
// workspace roots.
func NewWatcher(graph *domain.WorkspaceGraph) *Watcher {
	return &Watcher{graph: graph}
}

// Watch starts a recursive fsnotify watch over every workspace named in
// plan and returns a channel of debounced, non-empty batches. A raw
// file-system event is only ever turned into a batch entry if its path
// matches one of target's Src globs for the workspace that owns it;
// directories are still walked recursively as they appear so that files
// created later under them can be matched, but the creation of the
// directory itself is not, on its own, reported as a change. Only one
// watch may be active at a time; a second call before Unwatch returns an
// error.
func (w *Watcher) Watch(ctx context.Context, plan domain.OrderedTargets, target string, debounce time.Duration) (<-chan []ports.WatchEvent, error) {
	w.mu.Lock()
	if w.fsWatcher != nil {
		w.mu.Unlock()
		return nil, domain.ErrWatchAlreadyActive
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}

	roots := make(map[string]string)
	globs := make(map[string][]string)
	for _, name := range plan.Workspaces() {
		ws, ok := w.graph.Get(name)
		if !ok {
			continue
		}
		roots[filepath.Clean(ws.Root)] = name
		if cfg, ok := ws.Targets[target]; ok {
			for _, pattern := range cfg.Src {
				globs[name] = append(globs[name], filepath.Join(ws.Root, pattern))
			}
		}
		if err := addRecursively(fsWatcher, ws.Root); err != nil {
			_ = fsWatcher.Close()
			w.mu.Unlock()
			return nil, err
		}
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.fsWatcher = fsWatcher
	w.cancel = cancel
	w.roots = roots
	w.globs = globs
	w.mu.Unlock()

	out := make(chan []ports.WatchEvent, eventChannelBuffer)
	batches := newDebouncer(debounce, out)

	go w.pump(watchCtx, fsWatcher, roots, globs, batches)

	return out, nil
}

// Unwatch stops the active watch and releases its fsnotify handle.
func (w *Watcher) Unwatch() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsWatcher == nil {
		return nil
	}
	w.cancel()
	err := w.fsWatcher.Close()
	w.fsWatcher = nil
	w.cancel = nil
	w.roots = nil
	w.globs = nil
	return err
}

// pump converts raw fsnotify events into ports.WatchEvent and feeds them
// to the debouncer until ctx is done or the fsnotify channels close.
func (w *Watcher) pump(ctx context.Context, fsWatcher *fsnotify.Watcher, roots map[string]string, globs map[string][]string, batches *debouncer) {
	defer batches.close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}

			dir := event.Op&fsnotify.Create == fsnotify.Create && isDir(event.Name)

			if dir {
				_ = addRecursively(fsWatcher, event.Name)
			}

			we, ok := resolve(event, roots, globs, dir)
			if !ok {
				continue
			}
			batches.add(we)

		case _, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// resolve maps a raw fsnotify event to the workspace that owns it and the
// FSEventKind it represents. Events outside every watched root, whose op
// carries no signal we care about, or whose path matches none of the
// owning workspace's target source globs are dropped.
func resolve(event fsnotify.Event, roots map[string]string, globs map[string][]string, wasDir bool) (ports.WatchEvent, bool) {
	kind, ok := classifyOp(event.Op, wasDir)
	if !ok {
		return ports.WatchEvent{}, false
	}

	for root, name := range roots {
		if !within(root, event.Name) {
			continue
		}
		if !matchesGlobs(event.Name, globs[name]) {
			return ports.WatchEvent{}, false
		}
		return ports.WatchEvent{ResolvedTarget: name, Kind: kind, Path: event.Name}, true
	}
	return ports.WatchEvent{}, false
}

// matchesGlobs reports whether path matches any of a workspace's
// absolute target source glob patterns. An empty pattern set matches
// nothing: a target with no declared Src has no files worth watching.
func matchesGlobs(path string, globs []string) bool {
	for _, pattern := range globs {
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// classifyOp maps an fsnotify op to a FSEventKind. Remove/Rename events
// arrive after the path is gone, so there is no reliable way to tell
// whether it named a file or a directory; both map to FSEventUnlink.
func classifyOp(op fsnotify.Op, wasDir bool) (domain.FSEventKind, bool) {
	switch {
	case op&fsnotify.Remove == fsnotify.Remove, op&fsnotify.Rename == fsnotify.Rename:
		return domain.FSEventUnlink, true
	case op&fsnotify.Create == fsnotify.Create:
		if wasDir {
			return domain.FSEventAddDir, true
		}
		return domain.FSEventAdd, true
	case op&fsnotify.Write == fsnotify.Write:
		return domain.FSEventChange, true
	default:
		return "", false
	}
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// addRecursively adds root and every non-skipped subdirectory to watcher.
func addRecursively(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries, keep walking
		}
		if !d.IsDir() {
			return nil
		}
		if skipDirectories[d.Name()] {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
