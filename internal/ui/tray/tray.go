package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// LimitChoices are the time limits offered in the tray menu.
var LimitChoices = []time.Duration{
	5 * time.Minute,
	10 * time.Minute,
	15 * time.Minute,
	30 * time.Minute,
	60 * time.Minute,
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowTimer   func()
	OnSetLimit    func(time.Duration)
	OnRestart     func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	title       string
	statusItem  *fyne.MenuItem
	limitItem   *fyne.MenuItem
	restartItem *fyne.MenuItem
	callbacks   Callbacks
	mode        string
	ended       bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks. A nil app is
// allowed and only keeps menu state.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: waiting for start", nil)
	manager.statusItem.Disabled = true

	items := make([]*fyne.MenuItem, 0, len(LimitChoices))
	for _, limit := range LimitChoices {
		limit := limit
		items = append(items, fyne.NewMenuItem(limitLabel(limit), func() {
			if manager.callbacks.OnSetLimit != nil {
				manager.callbacks.OnSetLimit(limit)
			}
		}))
	}
	manager.limitItem = fyne.NewMenuItem("Set time limit", nil)
	manager.limitItem.ChildMenu = fyne.NewMenu("", items...)

	manager.restartItem = fyne.NewMenuItem("Restart timer", func() {
		if manager.callbacks.OnRestart != nil {
			manager.callbacks.OnRestart()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetMode records the timer mode shown next to the status.
func (manager *Manager) SetMode(mode string) {
	manager.mode = mode
	manager.refreshStatus()
}

// SetEnded disables the limit menu once the session is over.
func (manager *Manager) SetEnded(ended bool) {
	manager.ended = ended
	manager.limitItem.Disabled = ended
	manager.refreshStatus()
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShowTimer != nil {
				manager.callbacks.OnShowTimer()
			}
		}),
		manager.limitItem,
		manager.restartItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if status == "" {
		status = "waiting for start"
	}
	if manager.mode != "" {
		status = fmt.Sprintf("%s (%s)", status, manager.mode)
	}
	if manager.ended {
		status = fmt.Sprintf("%s, session ended", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func limitLabel(limit time.Duration) string {
	minutes := int(limit / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
