package stream

import (
	"sync"
	"time"
)

// Event types pushed to browser clients.
const (
	EventConnected = "connected"
	EventRecords   = "records"
	EventSelection = "selection"
)

const defaultClientBuffer = 100

// Event is one server-sent message. Data is JSON-encoded at write time.
type Event struct {
	ID        int64
	Type      string
	Data      any
	Timestamp time.Time
}

// Broker fans record-set and selection changes out to connected SSE
// clients. Broadcasts never block: a client whose buffer is full misses
// the event and catches up on its next re-fetch.
type Broker struct {
	mu      sync.RWMutex
	clients map[string]chan Event
	buffer  int
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = defaultClientBuffer
	}
	return &Broker{
		clients: make(map[string]chan Event),
		buffer:  buffer,
	}
}

// AddClient registers a client and returns its event channel. A client
// reconnecting under the same id replaces its previous registration.
func (b *Broker) AddClient(clientID string) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.clients[clientID]; ok {
		close(existing)
		delete(b.clients, clientID)
	}

	ch := make(chan Event, b.buffer)
	b.clients[clientID] = ch
	return ch
}

// RemoveClient releases a client registration and closes its channel.
func (b *Broker) RemoveClient(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.clients[clientID]; ok {
		close(ch)
		delete(b.clients, clientID)
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Broadcast delivers the event to every connected client that has buffer
// room.
func (b *Broker) Broadcast(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.ID == 0 {
		event.ID = event.Timestamp.UnixNano()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.clients {
		select {
		case ch <- event:
		default:
		}
	}
}
