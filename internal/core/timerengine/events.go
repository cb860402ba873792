package timerengine

import (
	"time"

	"conferencetimer/internal/core/model"
)

// Mode is the timing mode the engine is in.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeElapsed
	ModeCountdown
)

// String returns a human-readable mode name.
func (mode Mode) String() string {
	switch mode {
	case ModeIdle:
		return "idle"
	case ModeElapsed:
		return "elapsed"
	case ModeCountdown:
		return "countdown"
	default:
		return "unknown"
	}
}

// EventType defines the type of engine event.
type EventType string

const (
	EventDisplay    EventType = "display"
	EventModeChange EventType = "mode_change"
	EventWarning    EventType = "warning"
	EventTerminate  EventType = "terminate"
)

// Event is an engine update for observers.
type Event struct {
	Type    EventType
	Mode    Mode
	Display model.DisplayState
	// Value is the elapsed time in elapsed mode and the remaining time in countdown mode.
	Value       time.Duration
	LifecycleID string
	At          time.Time
}
