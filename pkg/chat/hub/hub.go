// Package hub fans chat events out to live websocket subscribers. Delivery
// is best effort: polling the thread stays the consistency path.
package hub

import (
	"sync"
	"sync/atomic"

	"kisan/entities"
)

// Buffer is the per-subscriber queue depth. A subscriber that falls this
// far behind loses events.
const Buffer = 16

const (
	EventMessage = "message"
	EventRead    = "read"
)

type Event struct {
	Type    string                     `json:"type"`
	Message *entities.PopulatedMessage `json:"message,omitempty"`
	// ReaderID is set on read receipts.
	ReaderID string `json:"readerId,omitempty"`
}

type Hub struct {
	mu      sync.Mutex
	subs    map[string]map[*Subscription]struct{}
	dropped atomic.Int64
	onDrop  func()
}

func New() *Hub {
	return &Hub{subs: map[string]map[*Subscription]struct{}{}}
}

// OnDrop registers a callback run for every dropped event.
func (h *Hub) OnDrop(fn func()) { h.onDrop = fn }

type Subscription struct {
	C    <-chan Event
	c    chan Event
	uid  string
	hub  *Hub
	once sync.Once
}

func (h *Hub) Subscribe(uid string) *Subscription {
	c := make(chan Event, Buffer)
	s := &Subscription{C: c, c: c, uid: uid, hub: h}
	h.mu.Lock()
	if h.subs[uid] == nil {
		h.subs[uid] = map[*Subscription]struct{}{}
	}
	h.subs[uid][s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Close unsubscribes and closes C. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		h := s.hub
		h.mu.Lock()
		delete(h.subs[s.uid], s)
		if len(h.subs[s.uid]) == 0 {
			delete(h.subs, s.uid)
		}
		close(s.c)
		h.mu.Unlock()
	})
}

// Publish never blocks.
func (h *Hub) Publish(uid string, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[uid] {
		select {
		case s.c <- ev:
		default:
			h.dropped.Add(1)
			if h.onDrop != nil {
				h.onDrop()
			}
		}
	}
}

// Connected reports whether uid has at least one live subscription.
func (h *Hub) Connected(uid string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[uid]) > 0
}

func (h *Hub) Dropped() int64 { return h.dropped.Load() }
