package clock

import (
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when told to. Loop callbacks run
// synchronously on the goroutine that calls Advance or Fire.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	loops []*manualTicker
}

type manualTicker struct {
	clock    *Manual
	interval time.Duration
	next     time.Time
	fn       func()
	stopped  bool
}

// NewManual creates a Manual clock set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the clock's current time.
func (clock *Manual) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// Every registers a loop whose first tick is due one interval from now.
func (clock *Manual) Every(interval time.Duration, fn func()) Ticker {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	loop := &manualTicker{
		clock:    clock,
		interval: interval,
		next:     clock.now.Add(interval),
		fn:       fn,
	}
	clock.loops = append(clock.loops, loop)
	return loop
}

// Set moves the clock to t without firing any loop.
func (clock *Manual) Set(t time.Time) {
	clock.mu.Lock()
	clock.now = t
	for _, loop := range clock.loops {
		if loop.next.Before(t) {
			loop.next = t.Add(loop.interval)
		}
	}
	clock.mu.Unlock()
}

// Advance moves the clock forward by d, firing every loop tick that falls
// due on the way in time order.
func (clock *Manual) Advance(d time.Duration) {
	clock.mu.Lock()
	target := clock.now.Add(d)
	for {
		due := clock.earliestDueLocked(target)
		if due == nil {
			break
		}
		clock.now = due.next
		due.next = due.next.Add(due.interval)
		clock.mu.Unlock()
		due.fn()
		clock.mu.Lock()
	}
	clock.now = target
	clock.mu.Unlock()
}

// Fire runs every live loop once at the current time.
func (clock *Manual) Fire() {
	clock.mu.Lock()
	loops := append([]*manualTicker(nil), clock.loops...)
	clock.mu.Unlock()

	for _, loop := range loops {
		clock.mu.Lock()
		stopped := loop.stopped
		clock.mu.Unlock()
		if !stopped {
			loop.fn()
		}
	}
}

// Pending returns the number of loops that have not been stopped.
func (clock *Manual) Pending() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.loops)
}

func (clock *Manual) earliestDueLocked(target time.Time) *manualTicker {
	var due *manualTicker
	for _, loop := range clock.loops {
		if loop.next.After(target) {
			continue
		}
		if due == nil || loop.next.Before(due.next) {
			due = loop
		}
	}
	return due
}

func (loop *manualTicker) Stop() {
	clock := loop.clock
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if loop.stopped {
		return
	}
	loop.stopped = true
	for i, candidate := range clock.loops {
		if candidate == loop {
			clock.loops = append(clock.loops[:i], clock.loops[i+1:]...)
			break
		}
	}
}
