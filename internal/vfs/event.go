package vfs

import "sync"

// EventType identifies the kind of change observed under a watched root.
type EventType int

const (
	EventCreated EventType = iota
	EventChanged
	EventDeleted
)

// String returns a short human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventChanged:
		return "changed"
	default:
		return "deleted"
	}
}

// Event is a single normalized change notification.
type Event struct {
	Path string
	Type EventType
}

// Registration is a live watch subscription. The producer owns the events
// channel and closes it once the underlying watch handle is released;
// consumers read from Events and call Close when done.
type Registration struct {
	events  <-chan Event
	dispose func() error

	once sync.Once
	err  error
}

// NewRegistration wraps a producer-owned event channel and a disposer for
// the native watch handle.
func NewRegistration(events <-chan Event, dispose func() error) *Registration {
	return &Registration{events: events, dispose: dispose}
}

// Events returns the change-notification stream. The channel is closed
// after Close releases the native handle.
func (r *Registration) Events() <-chan Event {
	return r.events
}

// Close releases the native watch handle. Safe to call more than once;
// subsequent calls return the first result.
func (r *Registration) Close() error {
	r.once.Do(func() {
		if r.dispose != nil {
			r.err = r.dispose()
		}
	})
	return r.err
}
