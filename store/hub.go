package store

import "sync"

// Topics writes broadcast on
const (
	TopicUsers    = "users"
	TopicDreams   = "dreams"
	TopicSettings = "settings"
	TopicReminder = "reminder"
)

// Hub fans out change notifications to live-query subscribers.
// Notifications carry no payload, subscribers re-read their snapshot.
// Channels are buffered with a depth of one and sends never block,
// so a slow subscriber only coalesces notifications instead of
// stalling writers
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[int]chan struct{}),
	}
}

// Subscribe registers interest in a topic. The returned cancel func
// must be called to release the subscription
func (h *Hub) Subscribe(topic string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int]chan struct{})
	}

	id := h.next
	h.next++

	ch := make(chan struct{}, 1)
	h.subs[topic][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if c, ok := h.subs[topic][id]; ok {
			delete(h.subs[topic], id)
			close(c)
		}
	}

	return ch, cancel
}

// Broadcast notifies every subscriber of a topic that something in
// the result set may have changed
func (h *Hub) Broadcast(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
