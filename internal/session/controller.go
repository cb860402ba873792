// Package session owns the lifetime of the live conference session and
// implements the engine's terminate collaborator.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrTimeLimitReached is the cause recorded when the countdown ends the session.
var ErrTimeLimitReached = errors.New("session time limit reached")

// Controller ends the session exactly once and runs end hooks.
type Controller struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelCauseFunc
	hooks  []func(error)
	ended  bool
	logger *slog.Logger
}

// NewController creates a controller whose session context derives from parent.
func NewController(parent context.Context, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancelCause(parent)
	return &Controller{
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With("component", "session"),
	}
}

// Context is cancelled when the session ends.
func (controller *Controller) Context() context.Context {
	return controller.ctx
}

// OnEnd registers a hook that runs when the session ends. Hooks run on their
// own goroutine so Terminate never blocks the caller.
func (controller *Controller) OnEnd(hook func(cause error)) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.hooks = append(controller.hooks, hook)
}

// Terminate ends the session because its time limit was reached.
func (controller *Controller) Terminate() {
	controller.End(ErrTimeLimitReached)
}

// End ends the session with cause. Only the first call has an effect.
func (controller *Controller) End(cause error) {
	controller.mu.Lock()
	if controller.ended {
		controller.mu.Unlock()
		return
	}
	controller.ended = true
	hooks := append([](func(error))(nil), controller.hooks...)
	controller.mu.Unlock()

	controller.logger.Info("session ended", slog.String("cause", cause.Error()))
	controller.cancel(cause)

	if len(hooks) == 0 {
		return
	}
	go func() {
		for _, hook := range hooks {
			hook(cause)
		}
	}()
}

// Ended reports whether the session has ended.
func (controller *Controller) Ended() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.ended
}

// Cause returns why the session ended, or nil while it is live.
func (controller *Controller) Cause() error {
	return context.Cause(controller.ctx)
}
