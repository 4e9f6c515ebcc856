// Package gesture turns per-tick hand landmarks into discrete gesture events.
package gesture

// EventType identifies a recognized gesture.
type EventType string

const (
	// SwipeLeft is a horizontal index-finger sweep toward the left edge.
	SwipeLeft EventType = "swipe_left"
	// SwipeRight is a horizontal index-finger sweep toward the right edge.
	SwipeRight EventType = "swipe_right"
	// Pinch is the index fingertip touching the thumb tip.
	Pinch EventType = "pinch"
	// ClosedFist is a hand with at least three fingers folded.
	ClosedFist EventType = "closed_fist"
)

// Event is a single recognized gesture. Data is empty for every type except
// Pinch, which carries a "strength" value. Events are immutable once created.
type Event struct {
	Type EventType
	Data map[string]float64
}

// NewEvent creates an Event with no payload.
func NewEvent(t EventType) *Event {
	return &Event{Type: t}
}

// NewPinchEvent creates a Pinch event carrying the given strength.
func NewPinchEvent(strength float64) *Event {
	return &Event{
		Type: Pinch,
		Data: map[string]float64{"strength": strength},
	}
}
