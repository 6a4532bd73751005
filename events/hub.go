package events

import (
	"log/slog"
	"sync"
)

const (
	TypeMovieAdded          = "movie_added"
	TypeMovieStatusSet      = "movie_status_set"
	TypeMovieDeleted        = "movie_deleted"
	TypeMovieBoobiesToggled = "movie_boobies_toggled"
)

// Event is the payload broadcast to connected clients. Events are
// ephemeral: clients connecting later never see past events.
type Event struct {
	Type    string `json:"type"`
	MovieID string `json:"movie_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Boobies *bool  `json:"boobies,omitempty"`
}

// observerCapacity bounds each observer's queue. A publish that finds
// the queue full treats the observer as gone and drops it.
const observerCapacity = 64

// Hub fans mutation events out to every registered observer. Observers
// own a bounded channel each; the hub never blocks on a publish.
type Hub struct {
	mu        sync.Mutex
	observers map[chan Event]struct{}
	closed    bool
}

func NewHub() *Hub {
	return &Hub{
		observers: make(map[chan Event]struct{}),
	}
}

// Register adds a fresh observer channel. The channel is closed by
// Shutdown or when a publish finds it congested; it is never closed by
// Unregister, so readers must handle both closure and their own exit.
func (h *Hub) Register() chan Event {
	ch := make(chan Event, observerCapacity)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.observers[ch] = struct{}{}
	return ch
}

// Unregister removes an observer channel, typically on disconnect.
func (h *Hub) Unregister(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.observers, ch)
}

// Publish delivers the event to every observer without blocking. An
// observer whose queue is full is dropped from the registry.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	for ch := range h.observers {
		select {
		case ch <- event:
		default:
			// Congested observer, treat as disconnected
			delete(h.observers, ch)
			close(ch)
			slog.Warn("Dropped congested event observer", "event_type", event.Type)
		}
	}
}

// Shutdown closes every observer channel and clears the registry.
// Further publishes are no-ops and further registers get a closed
// channel back.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true

	for ch := range h.observers {
		close(ch)
	}
	h.observers = make(map[chan Event]struct{})
}

// ObserverCount reports how many observers are currently registered.
func (h *Hub) ObserverCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.observers)
}
