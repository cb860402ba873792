package durationfmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"Zero", 0, "00:00"},
		{"Negative", -5 * time.Second, "00:00"},
		{"OneSecond", time.Second, "00:01"},
		{"TruncatesFraction", 1999 * time.Millisecond, "00:01"},
		{"ThirtySeconds", 30 * time.Second, "00:30"},
		{"SixtyFiveSeconds", 65 * time.Second, "01:05"},
		{"JustUnderHour", time.Hour - time.Second, "59:59"},
		{"OneHour", time.Hour, "01:00:00"},
		{"Long", 26*time.Hour + 3*time.Minute + 7*time.Second, "26:03:07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}
