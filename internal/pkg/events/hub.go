package events

import (
	"sync"

	"cluster-dashboard-backend/internal/model"
)

const defaultBuffer = 32

type Publisher interface {
	Publish(event model.NodeEvent)
}

// Hub fans node events out to subscribers. A subscriber whose buffer is full
// is dropped and its channel closed; Publish never blocks.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	buffer int
}

type Subscription struct {
	C    <-chan model.NodeEvent
	ch   chan model.NodeEvent
	hub  *Hub
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{}), buffer: defaultBuffer}
}

func (h *Hub) Subscribe() *Subscription {
	ch := make(chan model.NodeEvent, h.buffer)
	s := &Subscription{C: ch, ch: ch, hub: h}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) Publish(event model.NodeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subs {
		select {
		case s.ch <- event:
		default:
			h.dropLocked(s)
		}
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) dropLocked(s *Subscription) {
	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	s.once.Do(func() { close(s.ch) })
}

// Close unsubscribes and closes C. Safe to call more than once.
func (s *Subscription) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.hub.dropLocked(s)
}
