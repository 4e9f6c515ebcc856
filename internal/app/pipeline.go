package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// Start opens the camera and launches the detection loop on its own
// goroutine. A camera that cannot be opened is a startup failure and is
// returned here, before the loop begins.
func (a *App) Start(ctx context.Context) error {
	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	a.camera.SetFPS(IdleFPS)

	a.errCh = make(chan error, 1)
	go func() {
		a.errCh <- a.runLoop(ctx)
	}()

	log.Println("Detection pipeline started")
	return nil
}

// Wait blocks until the detection loop has exited and returns its result.
// A nil result means the loop stopped because its context was canceled; a
// non-nil result is an unrecoverable failure that should shut the whole
// service down.
func (a *App) Wait() error {
	return <-a.errCh
}

// Err exposes the loop's exit result without blocking, for callers that
// select on it alongside a signal channel.
func (a *App) Err() <-chan error {
	return a.errCh
}

// runLoop is the acquisition and classification loop. It polls the context
// at every tick boundary and guarantees camera, motion gate, and detector
// release on every exit path.
//
// Tick flow:
//  1. Read a frame; a transient grab failure is logged and the loop goes on.
//  2. Run the motion gate; motion switches to active FPS, and 2s of stillness
//     drops back to idle FPS.
//  3. In active mode, detect hands and classify; an idle tick counts as a
//     no-hand tick so classifier history and cooldown stay honest.
//  4. Publish any emitted event to the hub, in emission order.
//
// A detector failure is unrecoverable: the loop exits with the error and the
// caller escalates it into a full-service shutdown.
func (a *App) runLoop(ctx context.Context) error {
	defer a.camera.Close()
	defer a.motion.Close()
	defer func() {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}()

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Detection pipeline stopped")
			return nil
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Camera frame grab failed, retrying: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				// The still scene counts as a no-hand tick.
				a.step(nil)
				continue
			}

			hands, err := a.detector.Detect(frame)
			frame.Close()

			if err != nil {
				return fmt.Errorf("hand detection: %w", err)
			}

			if len(hands) == 0 {
				a.step(nil)
				continue
			}

			a.step(&hands[0])
		}
	}
}

// step advances the classifier by one tick and forwards any emitted event.
func (a *App) step(hand *detector.HandLandmarks) {
	ev := a.classifier.Classify(hand)
	if ev == nil {
		return
	}

	log.Printf("Gesture detected: %s", ev.Type)
	a.hub.Publish(ev)
}
