// Package hub fans gesture events out to connected consumers.
//
// The hub is single-writer: one run-loop goroutine owns the sink set, and
// every attach, detach, and broadcast happens on that goroutine. Producers
// and connection handlers talk to it through channels, so the set needs no
// locking.
package hub

import (
	"encoding/json"
	"log"
	"sync/atomic"

	"github.com/ayusman/mudra/internal/gesture"
)

// eventBuffer is the capacity of the producer-to-hub handoff channel. The
// producer never waits for delivery to consumers, only for room in the queue.
const eventBuffer = 64

// Sink is a connected consumer. Send reports delivery failure through its
// error return; the hub treats any Send error as fatal for that sink and
// removes it. Implementations are owned by the hub once attached.
type Sink interface {
	// ID identifies the sink in logs.
	ID() string

	// Send delivers one serialized event. It must not panic on a dead
	// connection; it returns an error instead.
	Send(data []byte) error

	// Close releases the underlying connection.
	Close() error
}

// Hub tracks live consumers and broadcasts gesture events to them in
// publication order. Delivery is best-effort and at-most-once per sink per
// event; a sink that fails a send is dropped without disturbing the others.
type Hub struct {
	attach chan Sink
	detach chan Sink
	events chan *gesture.Event

	done    chan struct{}
	stopped chan struct{}

	// sinks is touched only by the run loop.
	sinks map[Sink]struct{}

	count     atomic.Int64
	lastEvent atomic.Pointer[gesture.Event]
}

// New creates a Hub. Call Start before attaching sinks or publishing.
func New() *Hub {
	return &Hub{
		attach:  make(chan Sink),
		detach:  make(chan Sink),
		events:  make(chan *gesture.Event, eventBuffer),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		sinks:   make(map[Sink]struct{}),
	}
}

// Start launches the run loop.
func (h *Hub) Start() {
	go h.run()
}

// Stop shuts the hub down: the run loop exits and every remaining sink is
// closed. Stop blocks until that has happened and must not be called twice.
func (h *Hub) Stop() {
	close(h.done)
	<-h.stopped
}

// Attach registers a sink for event delivery. Attaching a sink that is
// already registered is a no-op. Attach returns without effect after Stop.
func (h *Hub) Attach(s Sink) {
	select {
	case h.attach <- s:
	case <-h.done:
	}
}

// Detach removes a sink from delivery. The sink's connection is not closed;
// that stays with the caller. Detaching an absent sink is a no-op.
func (h *Hub) Detach(s Sink) {
	select {
	case h.detach <- s:
	case <-h.done:
	}
}

// Publish queues an event for broadcast. It is fire-and-forget: the caller
// never waits for delivery, only for room in the handoff queue. Events are
// delivered to every live sink in the order they were published.
func (h *Hub) Publish(ev *gesture.Event) {
	select {
	case h.events <- ev:
	case <-h.done:
	}
}

// Count returns the number of currently attached sinks.
func (h *Hub) Count() int {
	return int(h.count.Load())
}

// LastEvent returns the most recently broadcast event, or nil if none has
// been broadcast yet.
func (h *Hub) LastEvent() *gesture.Event {
	return h.lastEvent.Load()
}

func (h *Hub) run() {
	defer close(h.stopped)

	for {
		select {
		case s := <-h.attach:
			if _, ok := h.sinks[s]; !ok {
				h.sinks[s] = struct{}{}
				h.count.Store(int64(len(h.sinks)))
				log.Printf("consumer attached: %s (%d total)", s.ID(), len(h.sinks))
			}
		case s := <-h.detach:
			if _, ok := h.sinks[s]; ok {
				delete(h.sinks, s)
				h.count.Store(int64(len(h.sinks)))
				log.Printf("consumer detached: %s (%d total)", s.ID(), len(h.sinks))
			}
		case ev := <-h.events:
			h.lastEvent.Store(ev)
			h.broadcast(ev)
		case <-h.done:
			h.drain()
			h.closeAll()
			return
		}
	}
}

// broadcast serializes the event once and delivers it to every sink. Failed
// sinks are collected during the sweep and removed afterward, so the set is
// never mutated while being iterated.
func (h *Hub) broadcast(ev *gesture.Event) {
	if len(h.sinks) == 0 {
		return
	}

	data, err := encodeEvent(ev)
	if err != nil {
		log.Printf("encode event %s: %v", ev.Type, err)
		return
	}

	var failed []Sink
	for s := range h.sinks {
		if err := s.Send(data); err != nil {
			log.Printf("send to %s failed: %v", s.ID(), err)
			failed = append(failed, s)
		}
	}

	for _, s := range failed {
		delete(h.sinks, s)
		s.Close()
	}
	if len(failed) > 0 {
		h.count.Store(int64(len(h.sinks)))
	}
}

// drain flushes events already queued at shutdown. The select in run gives
// done and events equal priority, so without this an event published just
// before Stop could be dropped.
func (h *Hub) drain() {
	for {
		select {
		case ev := <-h.events:
			h.lastEvent.Store(ev)
			h.broadcast(ev)
		default:
			return
		}
	}
}

func (h *Hub) closeAll() {
	for s := range h.sinks {
		s.Close()
		delete(h.sinks, s)
	}
	h.count.Store(0)
}

// wireEvent is the consumer wire format: {"type": ..., "data": {...}}.
// Data is always an object, never null.
type wireEvent struct {
	Type string             `json:"type"`
	Data map[string]float64 `json:"data"`
}

// encodeEvent serializes an event for the wire. This is the only place the
// event variant is unpacked.
func encodeEvent(ev *gesture.Event) ([]byte, error) {
	w := wireEvent{
		Type: string(ev.Type),
		Data: ev.Data,
	}
	if w.Data == nil {
		w.Data = map[string]float64{}
	}
	return json.Marshal(w)
}
