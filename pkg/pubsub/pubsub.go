// Package pubsub streams document status to viewers over Server-Sent Events.
package pubsub

import "context"

// TopicDocument names the only stream: the status of the served document.
const TopicDocument = "document"

// Document states.
const (
	StateLoading = "loading"
	StateReady   = "ready"
	StateError   = "error"
	StateRemoved = "removed"
)

// DocumentStatus describes the document currently being served.
type DocumentStatus struct {
	State   string `json:"state"`   // loading, ready, error, removed
	Version uint64 `json:"version"` // Store version of the served document
	Traces  int    `json:"traces"`  // Trace count of the served document
	Message string `json:"message"` // Human-readable status message
}

// Event is one status change as sent to viewers.
type Event struct {
	Topic string         `json:"topic"`
	Type  string         `json:"type"` // the status state
	Data  DocumentStatus `json:"data"`
	Seq   uint64         `json:"seq"` // publish order
}

// Subscription receives status events until closed.
type Subscription interface {
	// Events is closed when the publisher shuts down.
	Events() <-chan Event

	Close() error
}

// Publisher fans document status out to subscribers.
type Publisher interface {
	// Subscribe registers a subscriber, which first receives the latest
	// status if there is one. Cancelling ctx closes the subscription.
	Subscribe(ctx context.Context) (Subscription, error)

	// Publish records status as the latest and sends it to every subscriber.
	Publish(status DocumentStatus) error

	Close() error
}
