// Package app runs the capture and classification loop and forwards gesture
// events to the hub.
package app

import (
	"fmt"
	"sync"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hub"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back
	// to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Hub          *hub.Hub
	CameraID     int
	MotionThresh float64
	Classifier   gesture.Config

	// Camera and Detector override the defaults when set. Tests use these to
	// inject mocks; when nil, a real camera and the MediaPipe detector are
	// created.
	Camera   capture.Camera
	Detector detector.Detector
}

// App owns the detection session: the camera, the hand detector, the motion
// gate, and the classifier. Its loop runs on a dedicated goroutine, isolated
// from the hub's run loop, and hands each emitted event to the hub in
// emission order.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	hub        *hub.Hub
	enabled    bool
	mu         sync.RWMutex
	errCh      chan error
}

// New creates an App instance. A detector initialization failure is fatal:
// it is surfaced here, before anything starts serving.
func New(config Config) (*App, error) {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	a := &App{
		config:     config,
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: gesture.NewClassifier(config.Classifier),
		hub:        config.Hub,
		enabled:    true,
	}

	a.camera = config.Camera
	if a.camera == nil {
		a.camera = capture.NewCamera(config.CameraID)
	}

	a.detector = config.Detector
	if a.detector == nil {
		det, err := detector.NewMediaPipeDetector(detector.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("init hand detector: %w", err)
		}
		a.detector = det
	}

	return a, nil
}

// SetEnabled enables or disables gesture detection. While disabled the loop
// keeps ticking but skips all processing.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}
