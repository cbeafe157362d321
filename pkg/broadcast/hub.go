// Package broadcast fans accepted events out to websocket subscribers.
package broadcast

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/killfeedsc/killfeed/pkg/models"
)

const writeTimeout = 10 * time.Second

// conn is the subset of *websocket.Conn the hub needs. Narrowed so tests
// can substitute failing peers.
type conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Publisher mirrors each accepted event to an external sink. Errors are
// logged and never affect websocket delivery.
type Publisher interface {
	Publish(data []byte) error
}

// Hub maintains the subscriber set and delivers each accepted event to
// every current subscriber. A subscriber whose send fails is removed from
// the set; the remaining subscribers still receive the event.
type Hub struct {
	mu   sync.Mutex
	subs map[conn]struct{}

	playerName string

	publisher Publisher
	upgrader  websocket.Upgrader

	// Stats
	eventsSent uint64
	sendErrors uint64
}

// NewHub creates a hub. playerName decorates greetings and may be empty;
// publisher may be nil.
func NewHub(playerName string, publisher Publisher) *Hub {
	return &Hub{
		subs:       make(map[conn]struct{}),
		playerName: playerName,
		publisher:  publisher,
		upgrader: websocket.Upgrader{
			// Local-only server; the browser overlay connects from the
			// same host.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// SetPlayerName updates the identity advertised in greetings, typically
// once the log reveals it.
func (h *Hub) SetPlayerName(name string) {
	h.mu.Lock()
	h.playerName = name
	h.mu.Unlock()
}

// HandleWS upgrades an HTTP request, greets the subscriber, registers it,
// and holds the connection open until the peer goes away.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}

	// Greet before registering so the greeting never races an event
	// write on the same connection.
	h.mu.Lock()
	name := h.playerName
	h.mu.Unlock()
	greeting, _ := json.Marshal(models.Greeting(name, time.Now()))
	ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := ws.WriteMessage(websocket.TextMessage, greeting); err != nil {
		ws.Close()
		return
	}

	h.add(ws)
	defer h.remove(ws)

	// Incoming messages (e.g. close_overlay) are for the presentation
	// layer; the core only watches for the connection to drop.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast serializes the event once and sends it to a snapshot of the
// current subscribers. Dead subscribers are evicted; delivery to the rest
// is unaffected.
func (h *Hub) Broadcast(evt models.KillEvent) {
	payload, err := json.Marshal(evt.Payload())
	if err != nil {
		log.Printf("[WS] marshal failed: %v", err)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.Publish(payload); err != nil {
			log.Printf("[Publish] %v", err)
		}
	}

	h.mu.Lock()
	snapshot := make([]conn, 0, len(h.subs))
	for c := range h.subs {
		snapshot = append(snapshot, c)
	}
	h.mu.Unlock()

	if len(snapshot) == 0 {
		return
	}

	var dead []conn
	for _, c := range snapshot {
		c.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			dead = append(dead, c)
			continue
		}
		atomic.AddUint64(&h.eventsSent, 1)
	}

	if len(dead) > 0 {
		atomic.AddUint64(&h.sendErrors, uint64(len(dead)))
		h.mu.Lock()
		for _, c := range dead {
			delete(h.subs, c)
		}
		h.mu.Unlock()
		for _, c := range dead {
			c.Close()
		}
	}
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Stats returns current statistics.
func (h *Hub) Stats() map[string]interface{} {
	return map[string]interface{}{
		"subscribers": h.Subscribers(),
		"events_sent": atomic.LoadUint64(&h.eventsSent),
		"send_errors": atomic.LoadUint64(&h.sendErrors),
	}
}

func (h *Hub) add(c conn) {
	h.mu.Lock()
	h.subs[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c conn) {
	h.mu.Lock()
	delete(h.subs, c)
	h.mu.Unlock()
	c.Close()
}
