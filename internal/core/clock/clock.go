// Package clock abstracts wall-clock reads and repeating tick loops so the
// timer engine can be driven deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Ticker is a handle on a repeating callback. After Stop returns no new tick
// is delivered, but a real ticker may already be running the callback, so
// callers that need a hard cutoff must check in the callback whether the
// loop is still current.
type Ticker interface {
	Stop()
}

// Clock provides the current time and repeating loops.
type Clock interface {
	Now() time.Time
	// Every calls fn once per interval until the returned Ticker is stopped.
	Every(interval time.Duration, fn func()) Ticker
}

// Real returns a Clock backed by the time package.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Every(interval time.Duration, fn func()) Ticker {
	loop := &realTicker{stopCh: make(chan struct{})}
	go loop.run(interval, fn)
	return loop
}

type realTicker struct {
	stopCh chan struct{}
	once   sync.Once
}

func (loop *realTicker) Stop() {
	loop.once.Do(func() {
		close(loop.stopCh)
	})
}

func (loop *realTicker) run(interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-loop.stopCh:
			return
		case <-ticker.C:
			select {
			case <-loop.stopCh:
				return
			default:
			}
			fn()
		}
	}
}
