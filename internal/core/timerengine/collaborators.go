package timerengine

import (
	"log/slog"
	"time"

	"conferencetimer/internal/core/clock"
	"conferencetimer/internal/core/model"
)

// Renderer presents the current display state.
type Renderer interface {
	Render(state model.DisplayState)
}

// Notifier dispatches transient notifications.
type Notifier interface {
	Notify(notification model.Notification)
}

// SessionController ends the live session. Terminate must not block.
type SessionController interface {
	Terminate()
}

// Formatter turns a duration into display text. It must be pure.
type Formatter func(time.Duration) string

// Dependencies are the collaborators of an Engine. Nil fields get defaults.
//
// Renderer, Notifier and Session are called with the engine lock held and
// must not call back into the engine synchronously.
type Dependencies struct {
	Clock     clock.Clock
	Formatter Formatter
	Renderer  Renderer
	Notifier  Notifier
	Session   SessionController
	Logger    *slog.Logger
}

type nopRenderer struct{}

func (nopRenderer) Render(model.DisplayState) {}

type nopNotifier struct{}

func (nopNotifier) Notify(model.Notification) {}

type nopSession struct{}

func (nopSession) Terminate() {}
