package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func receive(t *testing.T, ch <-chan ChangeEvent, timeout time.Duration) ChangeEvent {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return ev
	case <-time.After(timeout):
		t.Fatal("timeout waiting for event")
	}
	return ChangeEvent{}
}

func TestDebouncerBatches(t *testing.T) {
	in := make(chan ChangeEvent)
	d := NewDebouncer(in, 30*time.Millisecond, time.Second)
	d.Start(t.Context())

	for range 5 {
		in <- ChangeEvent{Type: ChangeTypeModified, Paths: []string{"doc.json"}}
	}

	ev := receive(t, d.Output(), time.Second)
	if ev.Type != ChangeTypeModified {
		t.Errorf("Type = %v, want modified", ev.Type)
	}
	if len(ev.Paths) != 1 || ev.Paths[0] != "doc.json" {
		t.Errorf("Paths = %v, want deduplicated [doc.json]", ev.Paths)
	}

	select {
	case extra := <-d.Output():
		t.Errorf("unexpected second event: %+v", extra)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestDebouncerMaxWait(t *testing.T) {
	in := make(chan ChangeEvent)
	d := NewDebouncer(in, 50*time.Millisecond, 120*time.Millisecond)
	d.Start(t.Context())

	stop := make(chan struct{})
	go func() {
		tick := time.NewTicker(10 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				in <- ChangeEvent{Type: ChangeTypeModified, Paths: []string{"doc.json"}}
			}
		}
	}()
	defer close(stop)

	// Events never go quiet, so only maxWait can flush.
	receive(t, d.Output(), 500*time.Millisecond)
}

func TestDebouncerRemovalWins(t *testing.T) {
	in := make(chan ChangeEvent)
	d := NewDebouncer(in, 20*time.Millisecond, time.Second)
	d.Start(t.Context())

	in <- ChangeEvent{Type: ChangeTypeModified, Paths: []string{"doc.json"}}
	in <- ChangeEvent{Type: ChangeTypeRemoved, Paths: []string{"doc.json"}}

	if ev := receive(t, d.Output(), time.Second); ev.Type != ChangeTypeRemoved {
		t.Errorf("Type = %v, want removed", ev.Type)
	}

	in <- ChangeEvent{Type: ChangeTypeRemoved, Paths: []string{"doc.json"}}
	in <- ChangeEvent{Type: ChangeTypeModified, Paths: []string{"doc.json"}}

	if ev := receive(t, d.Output(), time.Second); ev.Type != ChangeTypeModified {
		t.Errorf("Type = %v, want modified after recreate", ev.Type)
	}
}

func TestDebouncerFlushesOnClose(t *testing.T) {
	in := make(chan ChangeEvent, 1)
	d := NewDebouncer(in, time.Hour, time.Hour)
	d.Start(context.Background())

	in <- ChangeEvent{Type: ChangeTypeModified, Paths: []string{"doc.json"}}
	close(in)

	receive(t, d.Output(), time.Second)
	if _, ok := <-d.Output(); ok {
		t.Error("output should be closed after input closes")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		op       fsnotify.Op
		want     ChangeType
		relevant bool
	}{
		{fsnotify.Write, ChangeTypeModified, true},
		{fsnotify.Create, ChangeTypeModified, true},
		{fsnotify.Remove, ChangeTypeRemoved, true},
		{fsnotify.Rename, ChangeTypeRemoved, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tt := range tests {
		got, relevant := classify(tt.op)
		if relevant != tt.relevant || (relevant && got != tt.want) {
			t.Errorf("classify(%v) = %v, %v; want %v, %v", tt.op, got, relevant, tt.want, tt.relevant)
		}
	}
}

func TestAnalyzeChanges(t *testing.T) {
	a := AnalyzeChanges(ChangeEvent{Type: ChangeTypeModified, Paths: []string{"a"}})
	if !a.NeedReload || a.KeepCurrent {
		t.Errorf("modified: %+v", a)
	}
	a = AnalyzeChanges(ChangeEvent{Type: ChangeTypeRemoved})
	if a.NeedReload || !a.KeepCurrent {
		t.Errorf("removed: %+v", a)
	}
}

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(path)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}
	if !filepath.IsAbs(fw.Path()) || filepath.Base(fw.Path()) != filepath.Base(path) {
		t.Errorf("Path() = %q, want absolute path to %s", fw.Path(), filepath.Base(path))
	}
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	if err := fw.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"data": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := receive(t, fw.Events(), 2*time.Second)
	if ev.Type != ChangeTypeModified || filepath.Base(ev.Paths[0]) != "doc.json" {
		t.Errorf("unexpected event %+v", ev)
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-fw.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel not closed after cancel")
		}
	}
}
