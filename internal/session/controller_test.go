package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTerminateCancelsContextOnce(t *testing.T) {
	controller := NewController(context.Background(), quietLogger())
	var calls atomic.Int32
	done := make(chan error, 2)
	controller.OnEnd(func(cause error) {
		calls.Add(1)
		done <- cause
	})

	require.False(t, controller.Ended())
	require.NoError(t, controller.Cause())

	controller.Terminate()
	controller.Terminate()

	select {
	case cause := <-done:
		assert.ErrorIs(t, cause, ErrTimeLimitReached)
	case <-time.After(time.Second):
		t.Fatal("end hook did not run")
	}
	assert.True(t, controller.Ended())
	assert.ErrorIs(t, controller.Cause(), ErrTimeLimitReached)
	assert.ErrorIs(t, controller.Context().Err(), context.Canceled)

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestEndKeepsFirstCause(t *testing.T) {
	controller := NewController(context.Background(), quietLogger())
	userQuit := errors.New("user quit")

	controller.End(userQuit)
	controller.Terminate()

	assert.ErrorIs(t, controller.Cause(), userQuit)
}

func TestParentCancellationPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	controller := NewController(parent, nil)

	cancel()

	assert.ErrorIs(t, controller.Context().Err(), context.Canceled)
	assert.False(t, controller.Ended())
}
