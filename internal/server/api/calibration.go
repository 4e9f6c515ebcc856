package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// CalibrationHandler reads and writes the classifier calibration settings.
// Updates are persisted and picked up the next time the service starts a
// detection session.
type CalibrationHandler struct {
	store *store.Store
}

// NewCalibrationHandler creates a new CalibrationHandler with the given store.
func NewCalibrationHandler(s *store.Store) *CalibrationHandler {
	return &CalibrationHandler{store: s}
}

type calibrationResponse struct {
	SwipeThreshold float64 `json:"swipe_threshold"`
	PinchEnter     float64 `json:"pinch_enter"`
	PinchExit      float64 `json:"pinch_exit"`
	CooldownFrames int     `json:"cooldown_frames"`
}

type calibrationRequest struct {
	SwipeThreshold *float64 `json:"swipe_threshold"`
	PinchEnter     *float64 `json:"pinch_enter"`
	PinchExit      *float64 `json:"pinch_exit"`
	CooldownFrames *int     `json:"cooldown_frames"`
}

// ServeHTTP implements the http.Handler interface.
func (h *CalibrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CalibrationHandler) get(w http.ResponseWriter, r *http.Request) {
	defaults := gesture.DefaultConfig()
	settings := h.store.Settings()

	writeJSON(w, http.StatusOK, calibrationResponse{
		SwipeThreshold: settings.GetFloat(store.SettingSwipeThreshold, defaults.SwipeThreshold),
		PinchEnter:     settings.GetFloat(store.SettingPinchEnter, defaults.PinchEnter),
		PinchExit:      settings.GetFloat(store.SettingPinchExit, defaults.PinchExit),
		CooldownFrames: settings.GetInt(store.SettingCooldownFrames, defaults.CooldownFrames),
	})
}

func (h *CalibrationHandler) update(w http.ResponseWriter, r *http.Request) {
	var req calibrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings := h.store.Settings()
	defaults := gesture.DefaultConfig()

	// Validate the whole request before persisting anything, so a rejected
	// update never leaves partial state behind.
	if req.SwipeThreshold != nil && *req.SwipeThreshold <= 0 {
		writeError(w, http.StatusBadRequest, "swipe_threshold must be positive")
		return
	}
	if req.PinchEnter != nil && *req.PinchEnter <= 0 {
		writeError(w, http.StatusBadRequest, "pinch_enter must be positive")
		return
	}
	if req.PinchExit != nil && *req.PinchExit <= 0 {
		writeError(w, http.StatusBadRequest, "pinch_exit must be positive")
		return
	}
	if req.CooldownFrames != nil && *req.CooldownFrames < 0 {
		writeError(w, http.StatusBadRequest, "cooldown_frames must not be negative")
		return
	}

	// The pinch latch needs a deadband: enter must stay strictly below exit,
	// or a steady distance between the two would re-fire on every cooldown
	// expiry. Check the values the store would hold after this update, falling
	// back to the persisted or default value for any field the request omits.
	pinchEnter := settings.GetFloat(store.SettingPinchEnter, defaults.PinchEnter)
	if req.PinchEnter != nil {
		pinchEnter = *req.PinchEnter
	}
	pinchExit := settings.GetFloat(store.SettingPinchExit, defaults.PinchExit)
	if req.PinchExit != nil {
		pinchExit = *req.PinchExit
	}
	if pinchEnter >= pinchExit {
		writeError(w, http.StatusBadRequest, "pinch_enter must be less than pinch_exit")
		return
	}

	if req.SwipeThreshold != nil {
		if err := settings.SetFloat(store.SettingSwipeThreshold, *req.SwipeThreshold); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save setting")
			return
		}
	}
	if req.PinchEnter != nil {
		if err := settings.SetFloat(store.SettingPinchEnter, *req.PinchEnter); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save setting")
			return
		}
	}
	if req.PinchExit != nil {
		if err := settings.SetFloat(store.SettingPinchExit, *req.PinchExit); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save setting")
			return
		}
	}
	if req.CooldownFrames != nil {
		if err := settings.SetInt(store.SettingCooldownFrames, *req.CooldownFrames); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save setting")
			return
		}
	}

	h.get(w, r)
}
