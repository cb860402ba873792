// Package durationfmt renders durations the way the conference timer shows them.
package durationfmt

import (
	"fmt"
	"time"
)

// Format renders d as MM:SS below one hour and HH:MM:SS from one hour on.
// Fractions of a second are truncated and negative values render as zero.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
