package main

import (
	"sync"
	"time"

	"conferencetimer/internal/core/model"
	"conferencetimer/internal/core/timerengine"
)

// liveTimer owns the engine for the running session and rebuilds it when the
// timer settings change or the moderator restarts the timer.
type liveTimer struct {
	mu       sync.Mutex
	config   model.TimerConfig
	deps     timerengine.Dependencies
	attach   func(*timerengine.Engine)
	engine   *timerengine.Engine
	start    model.Timestamp
	deadline model.Timestamp
	limit    time.Duration
}

// newLiveTimer creates a timer. attach is called with every new engine
// before it is activated, so observers never miss the first events.
func newLiveTimer(config model.TimerConfig, deps timerengine.Dependencies, attach func(*timerengine.Engine)) *liveTimer {
	return &liveTimer{
		config: config,
		deps:   deps,
		attach: attach,
	}
}

// Activate starts the session with the given inputs.
func (live *liveTimer) Activate(start, deadline model.Timestamp) {
	live.mu.Lock()
	defer live.mu.Unlock()

	live.start = start
	live.deadline = deadline
	live.rebuildLocked(timerengine.Progress{})
}

// Start reports a late session start.
func (live *liveTimer) Start(start model.Timestamp) {
	live.mu.Lock()
	defer live.mu.Unlock()

	live.start = start
	if live.engine != nil {
		live.engine.OnStartChanged(start)
	}
}

// StartNow reports that the session started at the current time.
func (live *liveTimer) StartNow() {
	live.Start(model.FromTime(live.deps.Clock.Now()))
}

// SetLimit sets the deadline to limit from now.
func (live *liveTimer) SetLimit(limit time.Duration) {
	live.mu.Lock()
	defer live.mu.Unlock()

	live.limit = limit
	live.deadline = model.FromTime(live.deps.Clock.Now().Add(limit))
	if live.engine != nil {
		live.engine.OnDeadlineChanged(live.deadline)
	}
}

// Restart starts the session again from now. A limit set through SetLimit is
// reapplied from the new start.
func (live *liveTimer) Restart() {
	live.mu.Lock()
	defer live.mu.Unlock()

	now := live.deps.Clock.Now()
	live.start = model.FromTime(now)
	if live.limit > 0 {
		live.deadline = model.FromTime(now.Add(live.limit))
	}
	live.rebuildLocked(timerengine.Progress{})
}

// Reconfigure swaps the timer settings, keeping the session inputs. A
// running countdown keeps the effects it already fired; after terminate the
// new settings only apply from the next restart.
func (live *liveTimer) Reconfigure(config model.TimerConfig) {
	live.mu.Lock()
	defer live.mu.Unlock()

	live.config = config
	if live.engine == nil {
		return
	}
	progress := live.engine.Progress()
	if progress.Terminated {
		return
	}
	live.rebuildLocked(progress)
}

// Engine returns the current engine, or nil before Activate.
func (live *liveTimer) Engine() *timerengine.Engine {
	live.mu.Lock()
	defer live.mu.Unlock()
	return live.engine
}

// Close stops the current engine and closes its subscriber channels.
func (live *liveTimer) Close() {
	live.mu.Lock()
	defer live.mu.Unlock()

	if live.engine != nil {
		live.engine.Close()
		live.engine = nil
	}
}

func (live *liveTimer) rebuildLocked(progress timerengine.Progress) {
	if live.engine != nil {
		live.engine.Close()
	}
	live.engine = timerengine.New(live.config, live.deps)
	live.engine.ResumeProgress(progress)
	if live.attach != nil {
		live.attach(live.engine)
	}
	live.engine.Activate(live.start, live.deadline)
}
