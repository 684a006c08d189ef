package events

import "sync"

// Hub fans events out to SSE subscribers. Slow subscribers miss events
// instead of blocking the publisher; the page re-reads full state on any
// event, so a dropped one only delays a refresh.
type Hub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
	buffer  int
	dropped uint64
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 10
	}
	return &Hub{clients: make(map[chan string]struct{}), buffer: buffer}
}

func (h *Hub) Subscribe() chan string {
	ch := make(chan string, h.buffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish wraps data in an Event envelope and sends it to every subscriber.
func (h *Hub) Publish(typ string, data any) {
	h.PublishRaw(MakeEvent("", typ, 1, data))
}

func (h *Hub) PublishRaw(evt string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- evt:
		default:
			h.dropped++
		}
	}
}

type Stats struct {
	Subscribers int    `json:"subscribers"`
	Dropped     uint64 `json:"dropped"`
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{Subscribers: len(h.clients), Dropped: h.dropped}
}
