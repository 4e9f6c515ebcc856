// Package server provides the HTTP server for the Mudra gesture service.
package server

import (
	"log"
	"net/http"

	"github.com/ayusman/mudra/internal/hub"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// wsSink adapts a websocket connection to the hub's Sink interface. A write
// failure surfaces as an error return, which the hub maps to removal.
type wsSink struct {
	id   string
	conn *websocket.Conn
}

func (s *wsSink) ID() string {
	return s.id
}

func (s *wsSink) Send(data []byte) error {
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *wsSink) Close() error {
	return s.conn.Close()
}

// EventsHandler attaches websocket consumers to the hub for gesture event
// delivery.
type EventsHandler struct {
	hub *hub.Hub
}

// NewEventsHandler creates a new EventsHandler delivering from the given hub.
func NewEventsHandler(h *hub.Hub) *EventsHandler {
	return &EventsHandler{hub: h}
}

// ServeHTTP upgrades the connection and registers it with the hub. Consumers
// only receive; anything they send is drained and ignored. A read error means
// the consumer went away, so the sink is detached.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	sink := &wsSink{id: uuid.NewString(), conn: conn}
	h.hub.Attach(sink)

	defer func() {
		h.hub.Detach(sink)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
