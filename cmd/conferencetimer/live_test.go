package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencetimer/internal/core/clock"
	"conferencetimer/internal/core/model"
	"conferencetimer/internal/core/timerengine"
)

type lastRenderer struct {
	state model.DisplayState
	count int
}

func (renderer *lastRenderer) Render(state model.DisplayState) {
	renderer.state = state
	renderer.count++
}

type countingNotifier struct {
	notified int
}

func (notifier *countingNotifier) Notify(model.Notification) {
	notifier.notified++
}

type countingSession struct {
	terminated int
}

func (session *countingSession) Terminate() {
	session.terminated++
}

func newTestTimer(t *testing.T) (*liveTimer, *clock.Manual, *lastRenderer, *countingSession, *[]*timerengine.Engine) {
	t.Helper()
	manual := clock.NewManual(now)
	renderer := &lastRenderer{}
	session := &countingSession{}
	var attached []*timerengine.Engine
	timer := newLiveTimer(model.DefaultTimerConfig(), timerengine.Dependencies{
		Clock:    manual,
		Renderer: renderer,
		Session:  session,
	}, func(engine *timerengine.Engine) {
		attached = append(attached, engine)
	})
	t.Cleanup(timer.Close)
	return timer, manual, renderer, session, &attached
}

func TestLiveTimerActivateAttachesEngine(t *testing.T) {
	timer, manual, renderer, _, attached := newTestTimer(t)

	timer.Activate(model.FromTime(now), model.Timestamp{})
	require.Len(t, *attached, 1)
	assert.Equal(t, "00:00", renderer.state.Formatted)

	manual.Advance(5 * time.Second)
	assert.Equal(t, "00:05", renderer.state.Formatted)
	assert.Equal(t, timerengine.ModeElapsed, timer.Engine().Mode())
}

func TestLiveTimerSetLimitSwitchesToCountdown(t *testing.T) {
	timer, manual, renderer, session, _ := newTestTimer(t)
	timer.Activate(model.FromTime(now), model.Timestamp{})

	timer.SetLimit(time.Minute)
	assert.Equal(t, timerengine.ModeCountdown, timer.Engine().Mode())
	assert.Equal(t, "01:00", renderer.state.Formatted)

	manual.Advance(59 * time.Second)
	assert.Equal(t, 1, session.terminated)
	assert.Equal(t, timerengine.ModeIdle, timer.Engine().Mode())
}

func TestLiveTimerRestartReappliesLimit(t *testing.T) {
	timer, manual, renderer, _, attached := newTestTimer(t)
	timer.Activate(model.FromTime(now), model.Timestamp{})
	timer.SetLimit(2 * time.Minute)

	manual.Advance(30 * time.Second)
	assert.Equal(t, "01:30", renderer.state.Formatted)

	timer.Restart()
	require.Len(t, *attached, 2)
	assert.Equal(t, "02:00", renderer.state.Formatted)
	assert.Equal(t, timerengine.ModeIdle, (*attached)[0].Mode())
}

func TestLiveTimerReconfigureKeepsInputs(t *testing.T) {
	timer, manual, renderer, session, attached := newTestTimer(t)
	timer.Activate(model.FromTime(now), model.FromTime(now.Add(time.Minute)))

	config := model.DefaultTimerConfig()
	config.TerminateAt = 10 * time.Second
	timer.Reconfigure(config)
	require.Len(t, *attached, 2)

	manual.Advance(50 * time.Second)
	assert.Equal(t, "00:00", renderer.state.Formatted)
	assert.Equal(t, 1, session.terminated)
}

func TestLiveTimerLateStart(t *testing.T) {
	timer, manual, renderer, _, _ := newTestTimer(t)
	timer.Activate(model.Timestamp{}, model.Timestamp{})
	assert.Equal(t, 0, renderer.count)

	timer.Start(model.FromTime(now))
	manual.Advance(time.Second)
	assert.Equal(t, "00:01", renderer.state.Formatted)
}

func TestLiveTimerCloseStopsEngine(t *testing.T) {
	timer, manual, renderer, _, _ := newTestTimer(t)
	timer.Activate(model.FromTime(now), model.Timestamp{})
	timer.Close()
	assert.Nil(t, timer.Engine())

	count := renderer.count
	manual.Advance(3 * time.Second)
	assert.Equal(t, count, renderer.count)
	assert.Equal(t, 0, manual.Pending())
}

func TestLiveTimerStartNow(t *testing.T) {
	timer, manual, renderer, _, _ := newTestTimer(t)
	timer.Activate(model.Timestamp{}, model.Timestamp{})

	manual.Advance(time.Minute)
	timer.StartNow()
	manual.Advance(2 * time.Second)

	assert.Equal(t, "00:02", renderer.state.Formatted)
	assert.Equal(t, timerengine.ModeElapsed, timer.Engine().Mode())
}

func TestLiveTimerReconfigureKeepsFiredWarning(t *testing.T) {
	manual := clock.NewManual(now)
	notifier := &countingNotifier{}
	config := model.DefaultTimerConfig()
	config.Match = model.MatchCrossing
	timer := newLiveTimer(config, timerengine.Dependencies{
		Clock:    manual,
		Notifier: notifier,
	}, nil)
	t.Cleanup(timer.Close)

	timer.Activate(model.FromTime(now), model.FromTime(now.Add(time.Minute)))
	manual.Advance(35 * time.Second)
	require.Equal(t, 1, notifier.notified)

	config.TickInterval = 500 * time.Millisecond
	timer.Reconfigure(config)
	manual.Advance(5 * time.Second)

	assert.Equal(t, 1, notifier.notified)
	assert.Equal(t, model.StyleAlert, timer.Engine().Display().Style)
	assert.True(t, timer.Engine().Progress().Warned)
}

func TestLiveTimerReconfigureAfterTerminateWaitsForRestart(t *testing.T) {
	timer, manual, _, session, attached := newTestTimer(t)
	timer.Activate(model.FromTime(now), model.FromTime(now.Add(10*time.Second)))
	manual.Advance(10 * time.Second)
	require.Equal(t, 1, session.terminated)

	config := model.DefaultTimerConfig()
	config.WarningAt = time.Minute
	timer.Reconfigure(config)
	assert.Len(t, *attached, 1)
	assert.Zero(t, manual.Pending())

	timer.Restart()
	assert.Len(t, *attached, 2)
	assert.Equal(t, time.Minute, timer.config.WarningAt)
}
