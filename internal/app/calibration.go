package app

import (
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// LoadCalibration builds the classifier configuration from stored calibration
// settings, falling back to the defaults for anything not set.
func LoadCalibration(s *store.Store) gesture.Config {
	cfg := gesture.DefaultConfig()
	if s == nil {
		return cfg
	}

	settings := s.Settings()
	cfg.SwipeThreshold = settings.GetFloat(store.SettingSwipeThreshold, cfg.SwipeThreshold)
	cfg.PinchEnter = settings.GetFloat(store.SettingPinchEnter, cfg.PinchEnter)
	cfg.PinchExit = settings.GetFloat(store.SettingPinchExit, cfg.PinchExit)
	cfg.CooldownFrames = settings.GetInt(store.SettingCooldownFrames, cfg.CooldownFrames)

	return cfg
}
