package sse

import (
	"sync"
)

// Event is a server-push message for one user's connected clients.
type Event struct {
	UserID string
	Event  string
	Data   any
}

// Hub is the registry of open SSE connections, keyed by user. It is created
// once at startup and passed explicitly to whoever publishes; entries are
// removed by the cleanup func returned from Subscribe, which the stream
// handler defers so disconnects and timeouts always unregister.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a connection for userID and returns its event channel
// together with the cleanup func that unregisters and closes it.
func (h *Hub) Subscribe(userID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[userID], ch)
		close(ch)
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every connection of userID. Connections whose
// buffer is full are skipped rather than blocked on.
func (h *Hub) Publish(userID, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[userID]; ok {
		for ch := range subs {
			select {
			case ch <- Event{UserID: userID, Event: event, Data: payload}:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of open connections for a user.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[userID]; ok {
		return len(subs)
	}
	return 0
}
