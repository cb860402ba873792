package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visibilityRecorder struct {
	mu      sync.Mutex
	hides   int
	visible bool
}

func (recorder *visibilityRecorder) set(visible bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.visible = visible
	if !visible {
		recorder.hides++
	}
}

func (recorder *visibilityRecorder) snapshot() (int, bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return recorder.hides, recorder.visible
}

func fastConfig() Config {
	return Config{
		VisibleDuration: Range{Min: 2 * time.Millisecond, Max: 2 * time.Millisecond},
		HiddenDuration:  Range{Min: 2 * time.Millisecond, Max: 2 * time.Millisecond},
	}
}

func TestRangeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	fixed := Range{Min: time.Second, Max: time.Second}
	assert.Equal(t, time.Second, fixed.Random(rng))

	spread := Range{Min: time.Second, Max: 2 * time.Second}
	for i := 0; i < 20; i++ {
		value := spread.Random(rng)
		assert.GreaterOrEqual(t, value, time.Second)
		assert.Less(t, value, 2*time.Second)
	}
}

func TestPulseTogglesUntilStopped(t *testing.T) {
	recorder := &visibilityRecorder{}
	engine := New(fastConfig(), recorder.set)

	engine.StartPulse(context.Background())
	engine.StartPulse(context.Background())
	require.True(t, engine.Running())

	require.Eventually(t, func() bool {
		hides, _ := recorder.snapshot()
		return hides >= 2
	}, time.Second, time.Millisecond)

	engine.Stop()
	assert.False(t, engine.Running())
	require.Eventually(t, func() bool {
		_, visible := recorder.snapshot()
		return visible
	}, time.Second, time.Millisecond)
}

func TestPulseEndsWithContext(t *testing.T) {
	recorder := &visibilityRecorder{}
	engine := New(fastConfig(), recorder.set)
	ctx, cancel := context.WithCancel(context.Background())

	engine.StartPulse(ctx)
	cancel()

	require.Eventually(t, func() bool {
		_, visible := recorder.snapshot()
		return visible
	}, time.Second, time.Millisecond)
	engine.Stop()
}
