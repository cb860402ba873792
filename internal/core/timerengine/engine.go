package timerengine

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"conferencetimer/internal/core/clock"
	"conferencetimer/internal/core/durationfmt"
	"conferencetimer/internal/core/model"
)

// Engine keeps exactly one tick loop running for the current mode and
// publishes a freshly formatted duration on every tick. In countdown mode it
// also fires the warning and terminate effects, each at most once per
// countdown.
type Engine struct {
	mu       sync.Mutex
	config   model.TimerConfig
	clock    clock.Clock
	format   Formatter
	renderer Renderer
	notifier Notifier
	session  SessionController
	logger   *slog.Logger

	live   bool
	closed bool
	mode   Mode
	loop   clock.Ticker

	start    model.Timestamp
	deadline model.Timestamp
	observed model.Timestamp

	display   model.DisplayState
	countdown countdownState
	resume    Progress

	warningText   string
	terminateText string
	zeroText      string

	events []chan Event
}

type countdownState struct {
	id         string
	deadline   model.Timestamp
	warned     bool
	terminated bool
}

// Progress records which countdown effects already fired for a deadline.
type Progress struct {
	Deadline   model.Timestamp
	Warned     bool
	Terminated bool
}

// New creates an idle Engine.
func New(config model.TimerConfig, deps Dependencies) *Engine {
	config = config.Normalized()
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if deps.Formatter == nil {
		deps.Formatter = durationfmt.Format
	}
	if deps.Renderer == nil {
		deps.Renderer = nopRenderer{}
	}
	if deps.Notifier == nil {
		deps.Notifier = nopNotifier{}
	}
	if deps.Session == nil {
		deps.Session = nopSession{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &Engine{
		config:        config,
		clock:         deps.Clock,
		format:        deps.Formatter,
		renderer:      deps.Renderer,
		notifier:      deps.Notifier,
		session:       deps.Session,
		logger:        deps.Logger.With("component", "timer"),
		mode:          ModeIdle,
		warningText:   deps.Formatter(config.WarningAt),
		terminateText: deps.Formatter(config.TerminateAt),
		zeroText:      deps.Formatter(0),
	}
}

// Subscribe registers a new observer channel. Events are dropped for
// observers whose buffer is full.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Activate makes the display live. With an absent start nothing is rendered
// or scheduled. Otherwise the elapsed time is published right away and an
// elapsed loop is scheduled; a deadline that is already known switches
// straight on to countdown. Activating while a loop runs is a no-op.
func (engine *Engine) Activate(start, deadline model.Timestamp) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed || engine.loop != nil {
		return
	}

	engine.live = true
	engine.start = start
	engine.deadline = deadline
	engine.observed = model.Timestamp{}

	if !start.IsSet() {
		engine.logger.Debug("activated without start time")
		return
	}
	engine.beginLocked()
}

// OnStartChanged records a start time that became known after activation.
// If the engine is live and has never started, it starts the elapsed loop.
func (engine *Engine) OnStartChanged(start model.Timestamp) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.live || engine.start.IsSet() {
		return
	}
	engine.start = start
	if !start.IsSet() {
		return
	}
	engine.beginLocked()
}

// OnDeadlineChanged switches to countdown mode when a new, present deadline
// is observed. The previous loop is stopped before the countdown loop is
// scheduled, so no tick of the old mode publishes after this returns.
func (engine *Engine) OnDeadlineChanged(deadline model.Timestamp) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}
	engine.deadline = deadline
	if !engine.live || !engine.start.IsSet() {
		return
	}
	engine.applyDeadlineLocked()
}

// Deactivate stops any active loop. It is safe to call repeatedly.
func (engine *Engine) Deactivate() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.deactivateLocked()
}

// Close deactivates the engine and closes all observer channels.
func (engine *Engine) Close() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}
	engine.deactivateLocked()
	engine.closed = true
	for _, ch := range engine.events {
		close(ch)
	}
	engine.events = nil
}

// Progress reports the deadline of the latest countdown and which of its
// effects already fired. It is zero until a countdown has started.
func (engine *Engine) Progress() Progress {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if !engine.countdown.deadline.IsSet() {
		return Progress{}
	}
	return Progress{
		Deadline:   engine.countdown.deadline,
		Warned:     engine.countdown.warned,
		Terminated: engine.countdown.terminated,
	}
}

// ResumeProgress makes the next countdown toward progress.Deadline skip the
// warning if it already fired. Call it before Activate when an engine
// replaces another one mid-countdown.
func (engine *Engine) ResumeProgress(progress Progress) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.resume = progress
}

// Mode returns the current timing mode.
func (engine *Engine) Mode() Mode {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.mode
}

// Running reports whether a tick loop is scheduled.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.loop != nil
}

// Display returns the last published display state.
func (engine *Engine) Display() model.DisplayState {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.display
}

func (engine *Engine) beginLocked() {
	now := engine.clock.Now()
	engine.setModeLocked(ModeElapsed, now)
	engine.display.Style = model.StyleDefault
	engine.elapsedTickLocked(now)
	engine.scheduleLocked(engine.elapsedTickLocked)
	engine.applyDeadlineLocked()
}

// applyDeadlineLocked starts a countdown toward engine.deadline. An absent
// deadline leaves the running loop alone.
func (engine *Engine) applyDeadlineLocked() {
	deadline := engine.deadline
	if !deadline.IsSet() || deadline.Equal(engine.observed) {
		return
	}
	engine.observed = deadline

	engine.stopLoopLocked()
	now := engine.clock.Now()
	engine.countdown = countdownState{id: uuid.NewString(), deadline: deadline}
	engine.display.Style = model.StyleDefault
	if engine.resume.Deadline.Equal(deadline) && engine.resume.Warned {
		engine.countdown.warned = true
		engine.display.Style = model.StyleAlert
	}
	engine.resume = Progress{}
	engine.setModeLocked(ModeCountdown, now)
	engine.logger.Info("countdown started",
		slog.String("deadline", deadline.String()),
		slog.String("countdown_id", engine.countdown.id))

	engine.scheduleLocked(engine.countdownTickLocked)
	if engine.config.Match == model.MatchCrossing {
		engine.countdownTickLocked(now)
		return
	}
	if remaining := deadline.Until(now); remaining >= 0 {
		engine.display.Formatted = engine.format(remaining)
		engine.publishLocked(now, remaining)
	}
}

func (engine *Engine) deactivateLocked() {
	engine.stopLoopLocked()
	engine.live = false
	engine.setModeLocked(ModeIdle, engine.clock.Now())
}

// scheduleLocked starts a loop whose ticks are ignored once the loop is no
// longer the engine's current one.
func (engine *Engine) scheduleLocked(tick func(now time.Time)) {
	var handle clock.Ticker
	handle = engine.clock.Every(engine.config.TickInterval, func() {
		engine.mu.Lock()
		defer engine.mu.Unlock()
		if handle == nil || engine.loop != handle {
			return
		}
		tick(engine.clock.Now())
	})
	engine.loop = handle
}

func (engine *Engine) stopLoopLocked() {
	if engine.loop == nil {
		return
	}
	engine.loop.Stop()
	engine.loop = nil
}

func (engine *Engine) elapsedTickLocked(now time.Time) {
	elapsed := engine.start.Since(now)
	if elapsed < 0 {
		engine.logger.Debug("skipping tick, start is in the future", slog.Duration("elapsed", elapsed))
		return
	}
	engine.display.Formatted = engine.format(elapsed)
	engine.publishLocked(now, elapsed)
}

func (engine *Engine) countdownTickLocked(now time.Time) {
	remaining := engine.countdown.deadline.Until(now)
	if remaining < 0 {
		if engine.config.Match == model.MatchCrossing {
			engine.catchUpLocked(now)
			return
		}
		engine.logger.Debug("skipping tick, deadline has passed", slog.Duration("remaining", remaining))
		return
	}

	formatted := engine.format(remaining)
	engine.display.Formatted = formatted

	warn := !engine.countdown.warned &&
		engine.reached(formatted, remaining, engine.warningText, engine.config.WarningAt)
	if warn {
		engine.countdown.warned = true
		engine.display.Style = model.StyleAlert
	}
	engine.publishLocked(now, remaining)

	if warn {
		engine.warnLocked(now, remaining)
	}

	if !engine.countdown.terminated &&
		engine.reached(formatted, remaining, engine.terminateText, engine.config.TerminateAt) {
		engine.terminateLocked(now)
	}
}

func (engine *Engine) reached(formatted string, remaining time.Duration, thresholdText string, threshold time.Duration) bool {
	if engine.config.Match == model.MatchCrossing {
		return remaining <= threshold
	}
	return formatted == thresholdText
}

// catchUpLocked fires the effects a late tick jumped past.
func (engine *Engine) catchUpLocked(now time.Time) {
	if !engine.countdown.warned {
		engine.countdown.warned = true
		engine.display.Style = model.StyleAlert
		engine.warnLocked(now, 0)
	}
	if !engine.countdown.terminated {
		engine.terminateLocked(now)
	}
}

func (engine *Engine) warnLocked(now time.Time, remaining time.Duration) {
	notification := engine.warningNotification()
	engine.logger.Info("countdown warning",
		slog.String("remaining", engine.display.Formatted),
		slog.String("countdown_id", engine.countdown.id))
	engine.notifier.Notify(notification)
	engine.emitLocked(Event{
		Type:        EventWarning,
		Mode:        engine.mode,
		Display:     engine.display,
		Value:       remaining,
		LifecycleID: engine.countdown.id,
		At:          now,
	})
}

func (engine *Engine) terminateLocked(now time.Time) {
	engine.countdown.terminated = true
	engine.logger.Info("countdown finished, terminating session",
		slog.String("countdown_id", engine.countdown.id))
	engine.session.Terminate()
	engine.stopLoopLocked()

	engine.emitLocked(Event{
		Type:        EventTerminate,
		Mode:        engine.mode,
		Display:     engine.display,
		LifecycleID: engine.countdown.id,
		At:          now,
	})
	engine.display.Formatted = engine.zeroText
	engine.publishLocked(now, 0)
	engine.setModeLocked(ModeIdle, now)
}

func (engine *Engine) warningNotification() model.Notification {
	period := engine.config.WarningAt
	notification := model.Notification{
		Period:     strconv.FormatInt(int64(period/time.Second), 10),
		PeriodType: "seconds",
		Timeout:    engine.config.WarningTimeout,
	}
	if period >= time.Minute && period%time.Minute == 0 {
		notification.Period = strconv.FormatInt(int64(period/time.Minute), 10)
		notification.PeriodType = "minutes"
	}
	return notification
}

func (engine *Engine) setModeLocked(mode Mode, now time.Time) {
	if engine.mode == mode {
		return
	}
	previous := engine.mode
	engine.mode = mode
	engine.logger.Info("mode changed",
		slog.String("from", previous.String()),
		slog.String("to", mode.String()))
	engine.emitLocked(Event{
		Type:        EventModeChange,
		Mode:        mode,
		Display:     engine.display,
		LifecycleID: engine.countdown.id,
		At:          now,
	})
}

func (engine *Engine) publishLocked(now time.Time, value time.Duration) {
	engine.renderer.Render(engine.display)
	engine.emitLocked(Event{
		Type:        EventDisplay,
		Mode:        engine.mode,
		Display:     engine.display,
		Value:       value,
		LifecycleID: engine.countdown.id,
		At:          now,
	})
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
