package events

import (
	"log/slog"
	"sync"

	"github.com/Lixing-Zhang/menu-builder/internal/repository"
)

// DefaultBufferSize is the per-client event buffer used when none is given
const DefaultBufferSize = 16

// Client receives menu change events until it is closed or dropped
type Client struct {
	id     uint64
	events chan repository.Event
}

// Events returns the channel of change events; it is closed when the client is dropped
func (c *Client) Events() <-chan repository.Event {
	return c.events
}

// Broadcaster fans store change events out to remote subscribers.
// A client whose buffer is full is dropped so no mutation waits on the network.
type Broadcaster struct {
	mu          sync.Mutex
	clients     map[uint64]*Client
	nextID      uint64
	bufferSize  int
	closed      bool
	unsubscribe func()
	logger      *slog.Logger
}

// NewBroadcaster subscribes to store and returns a running broadcaster
func NewBroadcaster(store repository.MenuStore, bufferSize int, logger *slog.Logger) *Broadcaster {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	b := &Broadcaster{
		clients:    make(map[uint64]*Client),
		bufferSize: bufferSize,
		logger:     logger,
	}
	b.unsubscribe = store.Subscribe(b.publish)
	return b
}

// Subscribe registers a new client. It returns nil once the broadcaster is closed.
func (b *Broadcaster) Subscribe() *Client {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.nextID++
	c := &Client{
		id:     b.nextID,
		events: make(chan repository.Event, b.bufferSize),
	}
	b.clients[c.id] = c
	return c
}

// Unsubscribe removes c and closes its channel. Unknown or already dropped clients are ignored.
func (b *Broadcaster) Unsubscribe(c *Client) {
	if c == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.remove(c.id)
}

// ClientCount returns the number of connected clients
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close stops listening to the store and drops every client
func (b *Broadcaster) Close() {
	b.unsubscribe()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for id := range b.clients {
		b.remove(id)
	}
}

func (b *Broadcaster) publish(ev repository.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, c := range b.clients {
		select {
		case c.events <- ev:
		default:
			b.logger.Warn("dropping slow event client", "client_id", id, "version", ev.Version)
			b.remove(id)
		}
	}
}

// remove must be called with mu held
func (b *Broadcaster) remove(id uint64) {
	c, ok := b.clients[id]
	if !ok {
		return
	}
	delete(b.clients, id)
	close(c.events)
}
