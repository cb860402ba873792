package model

import "time"

// ThresholdMatch selects how countdown thresholds are detected.
type ThresholdMatch string

const (
	// MatchExact fires when the formatted remaining time equals the formatted threshold.
	MatchExact ThresholdMatch = "exact"
	// MatchCrossing fires on the first tick whose remaining time is at or below the threshold.
	MatchCrossing ThresholdMatch = "crossing"
)

// TimerConfig contains runtime settings for the timer engine.
type TimerConfig struct {
	TickInterval time.Duration

	WarningAt   time.Duration
	TerminateAt time.Duration
	Match       ThresholdMatch

	WarningTimeout NotificationTimeout
}

// DefaultTimerConfig returns the settings of a stock conference timer.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		TickInterval:   time.Second,
		WarningAt:      30 * time.Second,
		TerminateAt:    time.Second,
		Match:          MatchExact,
		WarningTimeout: TimeoutMedium,
	}
}

// Normalized fills zero or invalid fields with defaults.
func (config TimerConfig) Normalized() TimerConfig {
	defaults := DefaultTimerConfig()
	if config.TickInterval <= 0 {
		config.TickInterval = defaults.TickInterval
	}
	if config.WarningAt <= 0 {
		config.WarningAt = defaults.WarningAt
	}
	if config.TerminateAt <= 0 {
		config.TerminateAt = defaults.TerminateAt
	}
	if config.Match != MatchExact && config.Match != MatchCrossing {
		config.Match = defaults.Match
	}
	if config.WarningTimeout == "" {
		config.WarningTimeout = defaults.WarningTimeout
	}
	return config
}
