package preferences

import (
	"fmt"
	"strconv"
	"time"

	"conferencetimer/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	warning    *widget.Entry
	terminate  *widget.Entry
	tick       *widget.Entry
	crossing   *widget.Check
	timeout    *widget.Select
	opacity    *widget.Slider
	fullscreen *widget.Check
}

var timeoutOptions = []string{
	string(model.TimeoutShort),
	string(model.TimeoutMedium),
	string(model.TimeoutLong),
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Conference Timer Settings")

	warning := widget.NewEntry()
	terminate := widget.NewEntry()
	tick := widget.NewEntry()
	crossing := widget.NewCheck("Fire when a threshold is crossed, not only on the exact second", nil)
	timeout := widget.NewSelect(timeoutOptions, nil)

	opacity := widget.NewSlider(0.5, 1)
	opacity.Step = 0.01

	fullscreen := widget.NewCheck("Fullscreen timer", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Countdown", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Warn when remaining"), warning, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("End session at"), terminate, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Warning stays"), timeout),
		crossing,
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Refresh every"), tick, widget.NewLabel("ms")),
		widget.NewLabel("Timer opacity"),
		opacity,
		fullscreen,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(460, 420))

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		warning:    warning,
		terminate:  terminate,
		tick:       tick,
		crossing:   crossing,
		timeout:    timeout,
		opacity:    opacity,
		fullscreen: fullscreen,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.warning.SetText(fmt.Sprintf("%d", int(settings.WarningAt/time.Second)))
	prefs.terminate.SetText(fmt.Sprintf("%d", int(settings.TerminateAt/time.Second)))
	prefs.tick.SetText(fmt.Sprintf("%d", int(settings.TickInterval/time.Millisecond)))
	prefs.crossing.SetChecked(settings.Match == model.MatchCrossing)
	prefs.timeout.SetSelected(string(settings.WarningTimeout))
	prefs.opacity.Value = settings.OverlayOpacity
	prefs.opacity.Refresh()
	prefs.fullscreen.SetChecked(settings.Fullscreen)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if seconds, ok := parsePositiveInt(prefs.warning.Text); ok {
		settings.WarningAt = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parsePositiveInt(prefs.terminate.Text); ok {
		settings.TerminateAt = time.Duration(seconds) * time.Second
	}
	if millis, ok := parsePositiveInt(prefs.tick.Text); ok {
		settings.TickInterval = time.Duration(millis) * time.Millisecond
	}

	settings.Match = model.MatchExact
	if prefs.crossing.Checked {
		settings.Match = model.MatchCrossing
	}
	if prefs.timeout.Selected != "" {
		settings.WarningTimeout = model.NotificationTimeout(prefs.timeout.Selected)
	}
	settings.OverlayOpacity = prefs.opacity.Value
	settings.Fullscreen = prefs.fullscreen.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
