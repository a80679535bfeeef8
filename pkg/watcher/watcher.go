package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ritzau/network-navigator/pkg/logging"
)

// ChangeType represents the type of file change detected
type ChangeType int

const (
	ChangeTypeModified ChangeType = iota
	ChangeTypeRemoved
)

func (t ChangeType) String() string {
	switch t {
	case ChangeTypeModified:
		return "modified"
	case ChangeTypeRemoved:
		return "removed"
	default:
		return fmt.Sprintf("ChangeType(%d)", int(t))
	}
}

// ChangeEvent represents a batch of file system changes
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches a single document file. The parent directory is
// watched so that editors replacing the file by rename are still seen.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan ChangeEvent
	once    sync.Once
}

// NewFileWatcher creates a watcher for the document at path.
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher: watcher,
		path:    abs,
		events:  make(chan ChangeEvent, 100),
	}, nil
}

// Path returns the absolute path being watched.
func (fw *FileWatcher) Path() string {
	return fw.path
}

// Start begins watching for changes. Events stop when ctx is cancelled.
func (fw *FileWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		fw.watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logging.Info("watching document", "path", fw.path)

	go fw.processEvents(ctx)
	return nil
}

// processEvents forwards events for the watched file and drops the rest.
func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer fw.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}

			changeType, relevant := classify(event.Op)
			if !relevant {
				continue
			}
			logging.Trace("document event", "op", event.Op.String(), "path", event.Name)

			select {
			case fw.events <- ChangeEvent{Type: changeType, Paths: []string{event.Name}, Timestamp: time.Now()}:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

func classify(op fsnotify.Op) (ChangeType, bool) {
	switch {
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return ChangeTypeRemoved, true
	case op.Has(fsnotify.Write), op.Has(fsnotify.Create):
		return ChangeTypeModified, true
	default:
		return 0, false
	}
}

// Events returns the channel of change events
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

func (fw *FileWatcher) shutdown() {
	fw.once.Do(func() {
		fw.watcher.Close()
		close(fw.events)
	})
}
