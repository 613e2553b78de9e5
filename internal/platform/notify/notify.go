// Package notify fans out "quote table changed" events to observers such as
// the SSE stream behind the list screen.
package notify

import (
	"sync"
	"time"
)

// Reasons attached to events.
const (
	ReasonSynced  = "synced"
	ReasonRemoved = "removed"
)

// Event tells observers that the quote table changed.
type Event struct {
	Reason  string    `json:"reason"`
	Symbols []string  `json:"symbols,omitempty"`
	At      time.Time `json:"at"`
}

// Hub is an in-process broadcaster. The zero value is not usable; use NewHub.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	buffer int
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Event), buffer: 8}
}

// Subscribe registers an observer. The returned func unsubscribes and
// closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Event, h.buffer)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
}

// Notify delivers e to every observer. A slow observer whose buffer is full
// misses the event rather than blocking the writer; events are refresh
// signals, so a later one supersedes it.
func (h *Hub) Notify(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribers returns the number of registered observers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
