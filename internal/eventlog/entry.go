package eventlog

import (
	"time"

	"conferencetimer/internal/core/timerengine"
)

// Entry is one logged engine event.
type Entry struct {
	Timestamp   time.Time     `cbor:"1,keyasint"`
	Type        string        `cbor:"2,keyasint"`
	Mode        string        `cbor:"3,keyasint"`
	Display     string        `cbor:"4,keyasint,omitempty"`
	Style       string        `cbor:"5,keyasint,omitempty"`
	Value       time.Duration `cbor:"6,keyasint,omitempty"`
	CountdownID string        `cbor:"7,keyasint,omitempty"`
}

// FromEvent converts an engine event to a log entry.
func FromEvent(event timerengine.Event) Entry {
	return Entry{
		Timestamp:   event.At,
		Type:        string(event.Type),
		Mode:        event.Mode.String(),
		Display:     event.Display.Formatted,
		Style:       string(event.Display.Style),
		Value:       event.Value,
		CountdownID: event.LifecycleID,
	}
}
