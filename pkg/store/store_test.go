package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ritzau/network-navigator/pkg/figure"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEmptyStore(t *testing.T) {
	s := New()
	doc, v := s.Current()
	if doc != nil || v != 0 {
		t.Errorf("Current() = %v, %d; want nil, 0", doc, v)
	}
	if s.Snapshot() != nil {
		t.Error("Snapshot() should be nil before anything is published")
	}
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.json", `{"data": [{"mode": "lines"}], "layout": {}}`)

	var loads []error
	s := New()
	s.OnLoad = func(_ string, err error) { loads = append(loads, err) }

	snap, err := s.Reload(path)
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if snap.Version != 1 || len(snap.Document.Data) != 1 || snap.Source != path {
		t.Errorf("unexpected snapshot: %+v", snap)
	}

	// A broken file keeps the previous document.
	writeFile(t, dir, "doc.json", `{"data": 3}`)
	snap, err = s.Reload(path)
	if !errors.Is(err, figure.ErrMalformedDocument) {
		t.Fatalf("Reload() error = %v, want ErrMalformedDocument", err)
	}
	if snap == nil || snap.Version != 1 {
		t.Errorf("failed reload should keep version 1, got %+v", snap)
	}

	doc, v := s.Current()
	if v != 1 || len(doc.Data) != 1 {
		t.Errorf("Current() = %d traces, version %d", len(doc.Data), v)
	}

	if len(loads) != 2 || loads[0] != nil || loads[1] == nil {
		t.Errorf("OnLoad calls = %v", loads)
	}
}

func TestPublishVersions(t *testing.T) {
	s := New()
	doc := &figure.Document{}

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Publish(doc, "test")
			s.Current()
		}()
	}
	wg.Wait()

	if _, v := s.Current(); v != 20 {
		t.Errorf("version = %d, want 20", v)
	}
}
