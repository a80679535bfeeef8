// Package store holds the currently loaded graph document.
package store

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ritzau/network-navigator/pkg/figure"
	"github.com/ritzau/network-navigator/pkg/logging"
)

// Snapshot is one published document.
type Snapshot struct {
	Document *figure.Document
	Version  uint64
	Source   string
	LoadedAt time.Time
}

// Store publishes documents to concurrent readers. Documents are never
// modified after Publish; readers may hold on to them freely.
type Store struct {
	current atomic.Pointer[Snapshot]

	mu      sync.Mutex // serialises writers
	version uint64

	// OnLoad, if set, is called after every Reload attempt.
	OnLoad func(source string, err error)
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Publish makes doc the current document and returns its version.
func (s *Store) Publish(doc *figure.Document, source string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	v := s.version
	s.current.Store(&Snapshot{
		Document: doc,
		Version:  v,
		Source:   source,
		LoadedAt: time.Now(),
	})
	return v
}

// Current returns the current document and its version. The document is nil
// and the version zero until something has been published.
func (s *Store) Current() (*figure.Document, uint64) {
	snap := s.current.Load()
	if snap == nil {
		return nil, 0
	}
	return snap.Document, snap.Version
}

// Snapshot returns the current snapshot, or nil.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Reload loads path and publishes it. On failure the previous document stays
// current.
func (s *Store) Reload(path string) (*Snapshot, error) {
	start := time.Now()
	doc, err := figure.LoadFile(path)
	if s.OnLoad != nil {
		s.OnLoad(path, err)
	}
	if err != nil {
		logging.Warn("document load failed", "path", path, "error", err)
		return s.current.Load(), fmt.Errorf("reloading %s: %w", path, err)
	}

	v := s.Publish(doc, path)
	logging.Info("document loaded", "path", path, "version", v, "traces", len(doc.Data), "duration", time.Since(start))
	return s.current.Load(), nil
}
