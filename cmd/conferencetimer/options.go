package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"conferencetimer/internal/core/model"
	"conferencetimer/internal/ui/preferences"
)

var errUsage = errors.New("usage")

// Options holds command-line settings for one run.
type Options struct {
	ConfigPath string
	Start      string
	StartedAgo time.Duration
	StartAfter time.Duration
	Deadline   string
	Limit      time.Duration
	LimitAfter time.Duration
	Headless   bool
	ExitOnEnd  bool
	LogLevel   string
	EventLog   string
	DumpLog    string
	Crossing   bool
}

func parseOptions(args []string, output io.Writer) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.ConfigPath, "config", "", "Settings file (default: user config dir)")
	fs.StringVar(&opts.Start, "start", "now", "Session start: now, RFC3339 time, epoch milliseconds, or empty for not started")
	fs.DurationVar(&opts.StartedAgo, "started-ago", 0, "Session started this long ago (overrides -start)")
	fs.DurationVar(&opts.StartAfter, "start-after", 0, "Start the session only after this delay, as when a meeting begins late")
	fs.StringVar(&opts.Deadline, "deadline", "", "Session deadline: RFC3339 time or epoch milliseconds")
	fs.DurationVar(&opts.Limit, "limit", 0, "Session time limit, counted from when it is applied")
	fs.DurationVar(&opts.LimitAfter, "limit-after", 0, "Apply -limit only after this delay, as a moderator would")
	fs.BoolVar(&opts.Headless, "headless", false, "Run without a window, rendering to the log")
	fs.BoolVar(&opts.ExitOnEnd, "exit-on-end", true, "Exit once the session is terminated")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.EventLog, "event-log", "", "Append engine events to this CBOR file")
	fs.StringVar(&opts.DumpLog, "dump-log", "", "Print a CBOR event log and exit")
	fs.BoolVar(&opts.Crossing, "crossing", false, "Fire thresholds when crossed instead of on the exact second")

	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	if opts.Deadline != "" && opts.Limit > 0 {
		return opts, fmt.Errorf("%w: -deadline and -limit are mutually exclusive", errUsage)
	}
	if opts.StartAfter > 0 && opts.StartedAgo > 0 {
		return opts, fmt.Errorf("%w: -start-after and -started-ago are mutually exclusive", errUsage)
	}
	if opts.LimitAfter > 0 && opts.Limit <= 0 {
		return opts, fmt.Errorf("%w: -limit-after needs -limit", errUsage)
	}
	return opts, nil
}

// apply overrides stored settings with flags given for this run.
func (opts Options) apply(settings preferences.Settings) preferences.Settings {
	if opts.LogLevel != "" {
		settings.LogLevel = opts.LogLevel
	}
	if opts.EventLog != "" {
		settings.EventLogPath = opts.EventLog
	}
	if opts.Crossing {
		settings.Match = model.MatchCrossing
	}
	return settings
}

// inputs resolves the start and deadline timestamps relative to now.
func (opts Options) inputs(now time.Time) (start, deadline model.Timestamp, err error) {
	switch {
	case opts.StartAfter > 0:
		start = model.Timestamp{}
	case opts.StartedAgo > 0:
		start = model.FromTime(now.Add(-opts.StartedAgo))
	default:
		start, err = parseTimestamp(opts.Start, now)
	}
	if err != nil {
		return start, deadline, fmt.Errorf("parse -start: %w", err)
	}

	if opts.Deadline != "" {
		if deadline, err = parseTimestamp(opts.Deadline, now); err != nil {
			return start, deadline, fmt.Errorf("parse -deadline: %w", err)
		}
	}
	if opts.Limit > 0 && opts.LimitAfter <= 0 {
		deadline = model.FromTime(now.Add(opts.Limit))
	}
	return start, deadline, nil
}

func parseTimestamp(value string, now time.Time) (model.Timestamp, error) {
	value = strings.TrimSpace(value)
	switch value {
	case "":
		return model.Timestamp{}, nil
	case "now":
		return model.FromTime(now), nil
	}
	if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
		return model.At(millis), nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return model.Timestamp{}, fmt.Errorf("invalid timestamp %q", value)
	}
	return model.FromTime(parsed), nil
}

func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}
	return level
}
