package watcher

import (
	"context"
	"slices"
	"time"

	"github.com/ritzau/network-navigator/pkg/logging"
)

// Debouncer batches rapid file system events so a document being written in
// several chunks is reloaded once.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

// run accumulates events until the input has been quiet for quietPeriod, or
// maxWait has passed since the first event of the batch.
func (d *Debouncer) run(ctx context.Context) {
	defer close(d.output)

	var (
		quiet       = stoppedTimer()
		deadline    = stoppedTimer()
		pending     bool
		accumulated = make(map[ChangeType][]string)
		eventCount  int
	)

	flush := func() {
		quiet.Stop()
		deadline.Stop()
		pending = false
		if eventCount == 0 {
			return
		}

		logging.Debug("flushing accumulated events", "count", eventCount)

		// A file that was removed and then recreated within one batch is
		// reported as modified only.
		if paths := accumulated[ChangeTypeModified]; len(paths) > 0 {
			d.emit(ChangeTypeModified, paths)
		} else if paths := accumulated[ChangeTypeRemoved]; len(paths) > 0 {
			d.emit(ChangeTypeRemoved, paths)
		}

		accumulated = make(map[ChangeType][]string)
		eventCount = 0
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				return
			}

			accumulated[event.Type] = append(accumulated[event.Type], event.Paths...)
			eventCount++

			// Removal after a write in the same batch wins.
			if event.Type == ChangeTypeRemoved {
				delete(accumulated, ChangeTypeModified)
			}

			quiet.Reset(d.quietPeriod)
			if !pending {
				deadline.Reset(d.maxWait)
				pending = true
			}

		case <-quiet.C:
			flush()

		case <-deadline.C:
			flush()
		}
	}
}

func (d *Debouncer) emit(t ChangeType, paths []string) {
	slices.Sort(paths)
	d.output <- ChangeEvent{
		Type:      t,
		Paths:     slices.Compact(paths),
		Timestamp: time.Now(),
	}
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}

func stoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return t
}
