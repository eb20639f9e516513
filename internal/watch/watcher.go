// Package watch turns file-system activity under a repository's .git
// directory into realtime events for WebSocket clients. Each client gets its
// own watcher; events are debounced so a single git operation, which touches
// many files at once, does not flood the connection.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/repoviz/repoviz/pkg/vizmodel"
)

const (
	// DefaultDebounce suppresses repeat events for the same path within
	// this window.
	DefaultDebounce = 500 * time.Millisecond

	eventBuffer = 100
)

// ErrNotARepository is returned when the watched path has no .git directory.
var ErrNotARepository = errors.New("no .git directory to watch")

// Watcher observes one repository's git metadata for changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	events   chan vizmodel.RealtimeEvent
	logger   *slog.Logger
	debounce time.Duration

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

// New creates a watcher over the repository at repoPath. The caller must
// invoke Run to start delivery and Close when done.
func New(repoPath string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	gitDir := filepath.Join(repoPath, ".git")
	if _, err := os.Stat(gitDir); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, repoPath)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}

	// fsnotify is not recursive; cover the directories git actually
	// touches on commits, checkouts and ref updates.
	watched := 0

	for _, dir := range []string{
		gitDir,
		filepath.Join(gitDir, "refs"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "objects"),
	} {
		if _, statErr := os.Stat(dir); statErr != nil {
			continue
		}

		if addErr := fsw.Add(dir); addErr != nil {
			logger.Warn("failed to watch directory", "dir", dir, "error", addErr)

			continue
		}

		watched++
	}

	if watched == 0 {
		closeErr := fsw.Close()

		return nil, errors.Join(fmt.Errorf("watch repository %s: no watchable directories", repoPath), closeErr)
	}

	return &Watcher{
		fsw:      fsw,
		events:   make(chan vizmodel.RealtimeEvent, eventBuffer),
		logger:   logger,
		debounce: DefaultDebounce,
		lastSeen: make(map[string]time.Time),
	}, nil
}

// Events is the stream of classified repository changes.
func (w *Watcher) Events() <-chan vizmodel.RealtimeEvent {
	return w.events
}

// Run delivers events until the context is cancelled or the underlying
// watcher closes. It closes the event channel on return.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			event, relevant := Classify(fsEvent.Name, fsEvent.Op)
			if !relevant || w.suppressed(fsEvent.Name) {
				continue
			}

			select {
			case w.events <- event:
			default:
				// Slow consumer; dropping is better than blocking delivery.
				w.logger.Debug("dropping realtime event", "path", fsEvent.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Close stops the underlying file-system watcher.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	if err != nil {
		return fmt.Errorf("close fs watcher: %w", err)
	}

	return nil
}

// suppressed reports whether an event for path falls inside the debounce
// window of the previous one.
func (w *Watcher) suppressed(path string) bool {
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	if last, ok := w.lastSeen[path]; ok && now.Sub(last) < w.debounce {
		return true
	}

	w.lastSeen[path] = now

	return false
}

// Classify maps a file-system event under .git to a realtime event.
// Only ref and object changes are reported; everything else (index churn,
// lock files, chmods) is noise.
func Classify(path string, op fsnotify.Op) (vizmodel.RealtimeEvent, bool) {
	var changeType vizmodel.ChangeType

	switch {
	case op.Has(fsnotify.Create):
		changeType = vizmodel.ChangeAdded
	case op.Has(fsnotify.Write):
		changeType = vizmodel.ChangeModified
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		changeType = vizmodel.ChangeDeleted
	default:
		return vizmodel.RealtimeEvent{}, false
	}

	normalized := filepath.ToSlash(path)

	if strings.HasSuffix(normalized, ".lock") {
		return vizmodel.RealtimeEvent{}, false
	}

	if strings.Contains(normalized, ".git/refs/") ||
		strings.Contains(normalized, ".git/objects/") ||
		strings.HasSuffix(normalized, ".git/packed-refs") ||
		strings.HasSuffix(normalized, ".git/HEAD") {
		return vizmodel.RealtimeEvent{
			Type:       vizmodel.EventFileChanged,
			Path:       normalized,
			ChangeType: changeType,
		}, true
	}

	return vizmodel.RealtimeEvent{}, false
}
