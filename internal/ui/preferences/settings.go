package preferences

import (
	"time"

	"conferencetimer/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	TickInterval   time.Duration
	WarningAt      time.Duration
	TerminateAt    time.Duration
	Match          model.ThresholdMatch
	WarningTimeout model.NotificationTimeout

	OverlayOpacity float64
	Fullscreen     bool

	LogLevel     string
	EventLogPath string
}

// DefaultSettings returns default settings for the conference timer.
func DefaultSettings() Settings {
	timer := model.DefaultTimerConfig()
	return Settings{
		TickInterval:   timer.TickInterval,
		WarningAt:      timer.WarningAt,
		TerminateAt:    timer.TerminateAt,
		Match:          timer.Match,
		WarningTimeout: timer.WarningTimeout,
		OverlayOpacity: 0.85,
		Fullscreen:     false,
		LogLevel:       "info",
	}
}

// TimerConfig converts settings to the engine configuration.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		TickInterval:   settings.TickInterval,
		WarningAt:      settings.WarningAt,
		TerminateAt:    settings.TerminateAt,
		Match:          settings.Match,
		WarningTimeout: settings.WarningTimeout,
	}.Normalized()
}
