package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains pulse timing values.
type Config struct {
	VisibleDuration Range
	HiddenDuration  Range
}

// Engine pulses an element by toggling its visibility.
type Engine struct {
	mu         sync.Mutex
	config     Config
	setVisible func(bool)
	cancel     context.CancelFunc
	rng        *rand.Rand
}

// New creates a pulse engine driving setVisible.
func New(config Config, setVisible func(bool)) *Engine {
	return &Engine{
		config:     config,
		setVisible: setVisible,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartPulse starts pulsing until ctx is done or Stop is called. The element
// is left visible when the pulse ends. Starting while pulsing is a no-op.
func (engine *Engine) StartPulse(ctx context.Context) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	visible := engine.config.VisibleDuration.Random(engine.rng)
	hidden := engine.config.HiddenDuration.Random(engine.rng)
	engine.mu.Unlock()

	go engine.run(runCtx, visible, hidden)
}

// Stop terminates any active pulse.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// Running reports whether a pulse is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

func (engine *Engine) run(ctx context.Context, visible, hidden time.Duration) {
	defer engine.setVisible(true)
	for {
		engine.setVisible(true)
		if !sleepWithContext(ctx, visible) {
			return
		}
		engine.setVisible(false)
		if !sleepWithContext(ctx, hidden) {
			return
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
