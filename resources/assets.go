// Package resources provides the icons used by the timer window and tray.
package resources

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AppIcon is shown for the application and for the tray while the session runs.
func AppIcon() fyne.Resource {
	return theme.HistoryIcon()
}

// AlertIcon replaces the tray icon once the countdown warning fired.
func AlertIcon() fyne.Resource {
	return theme.WarningIcon()
}

// EndedIcon replaces the tray icon once the session ended.
func EndedIcon() fyne.Resource {
	return theme.MediaStopIcon()
}
