package animation

import "time"

// DefaultConfig returns a calm pulse: mostly visible, briefly dark.
func DefaultConfig() Config {
	return Config{
		VisibleDuration: Range{
			Min: 600 * time.Millisecond,
			Max: 700 * time.Millisecond,
		},
		HiddenDuration: Range{
			Min: 250 * time.Millisecond,
			Max: 300 * time.Millisecond,
		},
	}
}
