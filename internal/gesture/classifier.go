package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Classifier tuning constants. The enter/exit split on pinch and the folded
// count on fist give each latch a deadband so the gesture cannot flicker
// while the hand hovers near the boundary.
const (
	// HistorySize is the number of index-fingertip samples kept for swipe
	// detection.
	HistorySize = 6
	// DefaultSwipeThreshold is the minimum horizontal travel (normalized
	// image coordinates) across a full history window to count as a swipe.
	DefaultSwipeThreshold = 0.15
	// DefaultPinchEnter is the index-to-thumb distance below which a pinch
	// begins.
	DefaultPinchEnter = 0.03
	// DefaultPinchExit is the distance at or above which a pinch releases.
	DefaultPinchExit = 0.04
	// DefaultCooldownFrames is the number of ticks during which no new swipe
	// may fire after any event.
	DefaultCooldownFrames = 10
	// FistFoldedCount is the number of folded fingers required for a fist.
	FistFoldedCount = 3

	// pinchStrengthRange and pinchStrengthScale map the pinch distance to a
	// strength in roughly [0, 1]: strength = max(0, range-d) * scale.
	pinchStrengthRange = 0.05
	pinchStrengthScale = 20
)

// Config holds the tunable classifier thresholds. The zero value is not
// usable; start from DefaultConfig and override from calibration settings.
type Config struct {
	SwipeThreshold float64
	PinchEnter     float64
	PinchExit      float64
	CooldownFrames int
}

// DefaultConfig returns the classifier thresholds used when no calibration
// has been stored.
func DefaultConfig() Config {
	return Config{
		SwipeThreshold: DefaultSwipeThreshold,
		PinchEnter:     DefaultPinchEnter,
		PinchExit:      DefaultPinchExit,
		CooldownFrames: DefaultCooldownFrames,
	}
}

// Classifier is a per-session state machine that consumes one landmark frame
// per tick and emits at most one gesture event. It is not safe for concurrent
// use; each detection session owns exactly one Classifier and calls Classify
// sequentially.
type Classifier struct {
	config      Config
	history     []float64
	cooldown    int
	pinchActive bool
	fistActive  bool
}

// NewClassifier creates a Classifier with the given thresholds.
func NewClassifier(config Config) *Classifier {
	return &Classifier{
		config:  config,
		history: make([]float64, 0, HistorySize),
	}
}

// Classify consumes one tick's landmarks and returns the recognized event, or
// nil when nothing fired. A nil hand means no hand was detected this tick:
// the swipe history is cleared and the cooldown keeps counting down.
//
// At most one event fires per tick, evaluated swipe, then pinch, then fist.
// The pinch and fist latches update from the raw measurements regardless of
// which candidate wins, so a pinch that loses the tick to a swipe still arms
// its hysteresis and will not fire until the fingers separate again.
func (c *Classifier) Classify(hand *detector.HandLandmarks) *Event {
	if hand == nil {
		c.history = c.history[:0]
		c.tickCooldown()
		return nil
	}

	indexTip := hand.Points[detector.IndexTip]
	thumbTip := hand.Points[detector.ThumbTip]

	if len(c.history) >= HistorySize {
		c.history = c.history[1:]
	}
	c.history = append(c.history, indexTip.X)

	var event *Event

	// Swipe: full history window, outside cooldown, enough travel.
	if len(c.history) == HistorySize && c.cooldown == 0 {
		delta := c.history[len(c.history)-1] - c.history[0]
		if math.Abs(delta) > c.config.SwipeThreshold {
			if delta < 0 {
				event = NewEvent(SwipeLeft)
			} else {
				event = NewEvent(SwipeRight)
			}
		}
	}

	// Pinch: 2D distance between index and thumb tips, with hysteresis.
	dx := indexTip.X - thumbTip.X
	dy := indexTip.Y - thumbTip.Y
	pinchDistance := math.Sqrt(dx*dx + dy*dy)
	if pinchDistance < c.config.PinchEnter && !c.pinchActive {
		c.pinchActive = true
		if event == nil {
			event = NewPinchEvent(math.Max(0, pinchStrengthRange-pinchDistance) * pinchStrengthScale)
		}
	} else if pinchDistance >= c.config.PinchExit {
		c.pinchActive = false
	}

	// Fist: folded-finger count, with hysteresis.
	folded := foldedFingers(hand)
	if folded >= FistFoldedCount && !c.fistActive {
		c.fistActive = true
		if event == nil {
			event = NewEvent(ClosedFist)
		}
	} else if folded < FistFoldedCount {
		c.fistActive = false
	}

	if event != nil {
		c.cooldown = c.config.CooldownFrames
		c.history = c.history[:0]
		return event
	}

	c.tickCooldown()
	return nil
}

// tickCooldown decrements the cooldown counter, stopping at zero.
func (c *Classifier) tickCooldown() {
	if c.cooldown > 0 {
		c.cooldown--
	}
}

// foldedFingers counts how many of the index, middle, ring, and pinky fingers
// are folded. A finger is folded when its fingertip sits below its PIP joint
// in image space (larger y is lower in the frame).
func foldedFingers(hand *detector.HandLandmarks) int {
	tips := [...]int{detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}
	joints := [...]int{detector.IndexPIP, detector.MiddlePIP, detector.RingPIP, detector.PinkyPIP}

	count := 0
	for i := range tips {
		if hand.Points[tips[i]].Y > hand.Points[joints[i]].Y {
			count++
		}
	}
	return count
}
