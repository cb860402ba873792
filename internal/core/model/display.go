package model

// StyleAttributes describes how the rendered duration should look.
type StyleAttributes string

const (
	StyleDefault StyleAttributes = ""
	StyleAlert   StyleAttributes = "alert"
)

// DisplayState is what the renderer shows.
type DisplayState struct {
	Formatted string
	Style     StyleAttributes
}

// NotificationTimeout classifies how long a notification stays visible.
type NotificationTimeout string

const (
	TimeoutShort  NotificationTimeout = "short"
	TimeoutMedium NotificationTimeout = "medium"
	TimeoutLong   NotificationTimeout = "long"
)

// Notification is a request to show a transient warning.
type Notification struct {
	Period     string
	PeriodType string
	Timeout    NotificationTimeout
}
