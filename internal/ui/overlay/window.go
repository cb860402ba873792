package overlay

import (
	"context"
	"image/color"

	"conferencetimer/internal/core/model"
	"conferencetimer/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// Config defines overlay visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
	Title      string
}

var (
	defaultColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	alertColor   = color.NRGBA{R: 232, G: 72, B: 66, A: 255}
)

// Window shows the conference timer and implements the engine's renderer.
type Window struct {
	app        fyne.App
	window     fyne.Window
	config     Config
	timerLabel *canvas.Text
	titleLabel *canvas.Text
	background *canvas.Rectangle
	pulse      *animation.Engine
	state      model.DisplayState
}

const (
	overlayWidthFraction  = float32(0.12)
	overlayHeightFraction = float32(0.10)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window. It stays hidden until Show is called.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow(config.Title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity})

	titleLabel := canvas.NewText(config.Title, defaultColor)
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 14

	timerLabel := canvas.NewText("", defaultColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 28

	content := container.New(&panelLayout{}, titleLabel, timerLabel)
	window.SetContent(container.NewStack(background, content))

	overlay := &Window{
		app:        app,
		window:     window,
		config:     config,
		timerLabel: timerLabel,
		titleLabel: titleLabel,
		background: background,
	}
	overlay.pulse = animation.New(animation.DefaultConfig(), overlay.setTimerVisible)
	overlay.applyWindowMode()
	return overlay
}

// Render shows state. It may be called from any goroutine.
func (overlay *Window) Render(state model.DisplayState) {
	fyne.Do(func() {
		overlay.apply(state)
	})
}

// Show brings the overlay on screen.
func (overlay *Window) Show() {
	overlay.applyWindowMode()
	overlay.window.Show()
}

// Hide removes the overlay from screen.
func (overlay *Window) Hide() {
	overlay.pulse.Stop()
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(false)
	}
	overlay.window.Hide()
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.background.FillColor = color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity}
	overlay.titleLabel.Text = config.Title
	overlay.window.SetTitle(config.Title)
	overlay.applyWindowMode()
	canvas.Refresh(overlay.background)
	overlay.titleLabel.Refresh()
}

// State returns the last applied display state.
func (overlay *Window) State() model.DisplayState {
	return overlay.state
}

func (overlay *Window) apply(state model.DisplayState) {
	overlay.state = state
	overlay.timerLabel.Text = state.Formatted
	overlay.timerLabel.Color = colorFor(state.Style)
	overlay.timerLabel.Refresh()

	if state.Style == model.StyleAlert {
		overlay.pulse.StartPulse(context.Background())
		return
	}
	overlay.pulse.Stop()
}

func (overlay *Window) setTimerVisible(visible bool) {
	fyne.Do(func() {
		if visible {
			overlay.timerLabel.Show()
			return
		}
		overlay.timerLabel.Hide()
	})
}

func colorFor(style model.StyleAttributes) color.Color {
	if style == model.StyleAlert {
		return alertColor
	}
	return defaultColor
}

func (overlay *Window) applyWindowMode() {
	overlay.applyNativeOpacity(overlay.config.Opacity)
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.resizeToScreenFraction()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

// panelLayout stacks the title above a timer that fills the rest.
type panelLayout struct{}

func (layout *panelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	title := objects[0]
	timer := objects[1]

	pad := size.Height * 0.08
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(availableWidth, titleSize.Height))

	timerY := pad + titleSize.Height + 4
	timerHeight := size.Height - timerY - pad
	if timerHeight < timer.MinSize().Height {
		timerHeight = timer.MinSize().Height
	}
	timer.Move(fyne.NewPos(pad, timerY))
	timer.Resize(fyne.NewSize(availableWidth, timerHeight))
}

func (layout *panelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	titleSize := objects[0].MinSize()
	timerSize := objects[1].MinSize()

	width := titleSize.Width
	if timerSize.Width > width {
		width = timerSize.Width
	}
	return fyne.NewSize(width+20, titleSize.Height+timerSize.Height+16)
}
