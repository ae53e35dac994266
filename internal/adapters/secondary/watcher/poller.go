package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/deckfold/deckfold/internal/domain/ports"
)

// PollingWatcher watches a single markdown file by polling. Polling keeps
// behavior identical across platforms and editors that replace files on
// save instead of writing in place.
type PollingWatcher struct {
	interval time.Duration
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	state   *fileState
	events  chan ports.FileChangeEvent
	stopCh  chan struct{}
	stopped bool
	wg      sync.WaitGroup
}

// fileState is the fingerprint of the watched file at the last poll
type fileState struct {
	size     int64
	modTime  time.Time
	checksum string
	exists   bool
}

// NewPollingWatcher creates a polling file watcher. The interval controls
// how often the file is checked; debounce suppresses bursts of events from
// editors that write multiple times per save.
func NewPollingWatcher(interval, debounce time.Duration, logger *slog.Logger) *PollingWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &PollingWatcher{
		interval: interval,
		debounce: debounce,
		logger:   logger.With("component", "watcher"),
		events:   make(chan ports.FileChangeEvent, 10),
		stopCh:   make(chan struct{}),
	}
}

// Watch starts watching the file at path for changes
func (w *PollingWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	state, err := fingerprint(absPath)
	if err != nil {
		return nil, fmt.Errorf("initial scan of %s: %w", absPath, err)
	}

	w.mu.Lock()
	w.state = state
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx, absPath)
	}()

	return w.events, nil
}

// Stop stops the watcher and closes the event channel
func (w *PollingWatcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopCh)
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)
	return nil
}

// pollLoop checks the file on every tick and emits debounced change events
func (w *PollingWatcher) pollLoop(ctx context.Context, path string) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var lastEvent time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			changeType, changed, err := w.check(path)
			if err != nil {
				w.logger.Warn("poll failed",
					slog.String("path", path),
					slog.String("error", err.Error()),
				)
				continue
			}
			if !changed || time.Since(lastEvent) < w.debounce {
				continue
			}

			event := ports.FileChangeEvent{
				Path:      path,
				Type:      changeType,
				Timestamp: time.Now(),
			}

			select {
			case w.events <- event:
				lastEvent = event.Timestamp
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			}
		}
	}
}

// check compares the file's current fingerprint against the stored one
func (w *PollingWatcher) check(path string) (ports.ChangeType, bool, error) {
	current, err := fingerprint(path)
	if err != nil {
		return ports.Modified, false, err
	}

	w.mu.Lock()
	previous := w.state
	w.state = current
	w.mu.Unlock()

	switch {
	case previous == nil || (!previous.exists && !current.exists):
		return ports.Modified, false, nil
	case previous.exists && !current.exists:
		return ports.Deleted, true, nil
	case !previous.exists && current.exists:
		return ports.Created, true, nil
	}

	// Size and mtime match means the content cannot have changed; skip the
	// checksum in the common no-change case.
	if previous.size == current.size && previous.modTime.Equal(current.modTime) {
		return ports.Modified, false, nil
	}

	return ports.Modified, previous.checksum != current.checksum, nil
}

// fingerprint captures the file's size, mtime, and content hash
func fingerprint(path string) (*fileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileState{exists: false}, nil
		}
		return nil, fmt.Errorf("stat: %w", err)
	}

	f, err := os.Open(path) // #nosec G304 - path is validated by caller
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("checksum: %w", err)
	}

	return &fileState{
		size:     info.Size(),
		modTime:  info.ModTime(),
		checksum: hex.EncodeToString(h.Sum(nil)),
		exists:   true,
	}, nil
}

var _ ports.FileWatcher = (*PollingWatcher)(nil)
