package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ritzau/network-navigator/pkg/logging"
)

// ErrClosed is returned once the publisher has been shut down.
var ErrClosed = errors.New("publisher is closed")

// subscriberBuffer is how many events a slow viewer may fall behind before
// events are dropped for it.
const subscriberBuffer = 16

var _ Publisher = (*StatusPublisher)(nil)

// StatusPublisher keeps only the latest document status. A status for an
// older store version than the latest one is stale and ignored.
type StatusPublisher struct {
	mu     sync.Mutex
	subs   map[*subscription]struct{}
	latest *Event
	seq    uint64
	closed bool
}

// NewStatusPublisher returns a publisher with no status yet.
func NewStatusPublisher() *StatusPublisher {
	return &StatusPublisher{subs: make(map[*subscription]struct{})}
}

// Subscribe registers a subscriber and queues the latest status for it.
func (p *StatusPublisher) Subscribe(ctx context.Context) (Subscription, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}

	sub := &subscription{
		events:    make(chan Event, subscriberBuffer),
		publisher: p,
	}
	p.subs[sub] = struct{}{}

	if p.latest != nil {
		sub.events <- *p.latest
		logging.Debug("replayed document status to new subscriber", "state", p.latest.Type, "version", p.latest.Data.Version)
	}

	context.AfterFunc(ctx, func() { sub.Close() })
	return sub, nil
}

// Publish records status as the latest and sends it to every subscriber
// without blocking. Subscribers that are too far behind miss the event.
func (p *StatusPublisher) Publish(status DocumentStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if p.latest != nil && status.Version < p.latest.Data.Version {
		logging.Debug("ignoring stale document status", "state", status.State,
			"version", status.Version, "latest", p.latest.Data.Version)
		return nil
	}

	p.seq++
	event := Event{Topic: TopicDocument, Type: status.State, Data: status, Seq: p.seq}
	p.latest = &event

	for sub := range p.subs {
		select {
		case sub.events <- event:
		default:
			logging.Warn("subscriber channel full, dropping document status", "state", status.State, "seq", event.Seq)
		}
	}
	return nil
}

// Latest returns the most recent status, if any has been published.
func (p *StatusPublisher) Latest() (DocumentStatus, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latest == nil {
		return DocumentStatus{}, false
	}
	return p.latest.Data, true
}

// Close ends every subscription. Later calls are no-ops.
func (p *StatusPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	for sub := range p.subs {
		close(sub.events)
	}
	clear(p.subs)
	return nil
}

// Subscribers returns the number of open subscriptions.
func (p *StatusPublisher) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}

func (p *StatusPublisher) unsubscribe(sub *subscription) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.subs, sub)
}

type subscription struct {
	events    chan Event
	publisher *StatusPublisher
	once      sync.Once
}

func (s *subscription) Events() <-chan Event {
	return s.events
}

func (s *subscription) Close() error {
	s.once.Do(func() { s.publisher.unsubscribe(s) })
	return nil
}

// WriteSSE writes an event to an SSE response writer
// Format: "data: {json}\n\n"
func WriteSSE(w io.Writer, event Event) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = fmt.Fprintf(w, "data: %s\n\n", jsonData)
	return err
}
