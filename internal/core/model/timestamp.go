package model

import "time"

// Timestamp is a point in time in milliseconds since the Unix epoch.
// The zero value means the time is not known yet.
type Timestamp struct {
	millis int64
	set    bool
}

// At returns a Timestamp for the given epoch milliseconds.
func At(millis int64) Timestamp {
	return Timestamp{millis: millis, set: true}
}

// FromTime converts t to a Timestamp. A zero t yields an absent Timestamp.
func FromTime(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return At(t.UnixMilli())
}

// IsSet reports whether the timestamp holds a value.
func (ts Timestamp) IsSet() bool {
	return ts.set
}

// Millis returns the epoch milliseconds, or 0 when absent.
func (ts Timestamp) Millis() int64 {
	return ts.millis
}

// Time returns the timestamp as a time.Time, or the zero time when absent.
func (ts Timestamp) Time() time.Time {
	if !ts.set {
		return time.Time{}
	}
	return time.UnixMilli(ts.millis)
}

// Equal reports whether both timestamps are absent or hold the same value.
func (ts Timestamp) Equal(other Timestamp) bool {
	if ts.set != other.set {
		return false
	}
	return !ts.set || ts.millis == other.millis
}

// Since returns now minus the timestamp.
func (ts Timestamp) Since(now time.Time) time.Duration {
	return time.Duration(now.UnixMilli()-ts.millis) * time.Millisecond
}

// Until returns the timestamp minus now.
func (ts Timestamp) Until(now time.Time) time.Duration {
	return time.Duration(ts.millis-now.UnixMilli()) * time.Millisecond
}

func (ts Timestamp) String() string {
	if !ts.set {
		return "absent"
	}
	return ts.Time().UTC().Format(time.RFC3339)
}
