// Package console renders the timer display through a structured logger for
// headless use.
package console

import (
	"log/slog"
	"sync"

	"conferencetimer/internal/core/model"
)

// Renderer logs the display whenever it changes.
type Renderer struct {
	mu     sync.Mutex
	logger *slog.Logger
	last   model.DisplayState
	shown  bool
}

// New creates a console renderer.
func New(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger.With("component", "display")}
}

// Render logs state unless it equals the previous one.
func (renderer *Renderer) Render(state model.DisplayState) {
	renderer.mu.Lock()
	defer renderer.mu.Unlock()
	if renderer.shown && state == renderer.last {
		return
	}
	renderer.last = state
	renderer.shown = true

	if state.Style == model.StyleAlert {
		renderer.logger.Warn("timer", slog.String("display", state.Formatted))
		return
	}
	renderer.logger.Info("timer", slog.String("display", state.Formatted))
}
