package websocket

import (
	"encoding/json"
	stdsync "sync"

	"github.com/dom/lol-extension-backend/internal/logger"
	syncer "github.com/dom/lol-extension-backend/internal/sync"
)

// Hub fans sync status events out to connected websocket clients. It
// implements the sync package's Publisher; the orchestrator never knows
// websockets exist.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	mu         stdsync.Mutex
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Publish implements syncer.Publisher. Never blocks: when the broadcast
// buffer is full the event is dropped, the sync pipeline must not wait on
// slow websocket consumers.
func (h *Hub) Publish(event syncer.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("failed to marshal status event", "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.log.Warn("status event dropped, broadcast buffer full", "type", event.Type)
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Slow client: drop it rather than back up the hub.
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// attach hands a client to Run. Once the hub has shut down nothing drains
// the register channel, so the send is abandoned and the client closed
// instead of leaking a blocked goroutine.
func (h *Hub) attach(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.Close()
	}
}

// detach is the shutdown-safe counterpart for the unregister channel. A
// client that was still registered when the hub stopped has already been
// closed by Run.
func (h *Hub) detach(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Stop shuts the hub down and waits for Run to exit.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}
