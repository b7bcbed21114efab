package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeTicker struct {
	c        chan time.Time
	stopped  chan struct{}
	stopOnce sync.Once
}

func (ticker *fakeTicker) C() <-chan time.Time { return ticker.c }

func (ticker *fakeTicker) Stop() {
	ticker.stopOnce.Do(func() { close(ticker.stopped) })
}

type tickerFactory struct {
	created chan *fakeTicker
}

func newTickerFactory() *tickerFactory {
	return &tickerFactory{created: make(chan *fakeTicker, 8)}
}

func (factory *tickerFactory) newTicker(time.Duration) Ticker {
	ticker := &fakeTicker{c: make(chan time.Time), stopped: make(chan struct{})}
	factory.created <- ticker
	return ticker
}

func (factory *tickerFactory) next(t *testing.T) *fakeTicker {
	t.Helper()
	select {
	case ticker := <-factory.created:
		return ticker
	case <-time.After(time.Second):
		t.Fatal("no ticker was created")
		return nil
	}
}

func newTestTimer(t *testing.T) (*Timer, *tickerFactory) {
	t.Helper()
	factory := newTickerFactory()
	timer := New(WithTicker(factory.newTicker))
	t.Cleanup(timer.Close)
	return timer, factory
}

func advance(t *testing.T, timer *Timer, ticker *fakeTicker) Event {
	t.Helper()
	ticker.c <- time.Now()
	select {
	case event := <-timer.Events():
		return event
	case <-time.After(time.Second):
		t.Fatal("no event after tick")
		return Event{}
	}
}

func waitStopped(t *testing.T, ticker *fakeTicker) {
	t.Helper()
	select {
	case <-ticker.stopped:
	case <-time.After(time.Second):
		t.Fatal("ticker was not stopped")
	}
}

func TestNewTimerIsIdlePomodoro(t *testing.T) {
	timer, _ := newTestTimer(t)

	snapshot := timer.Snapshot()
	assert.Equal(t, StateIdle, snapshot.State)
	assert.Equal(t, models.TimerPomodoro, snapshot.Type)
	assert.Equal(t, "25:00", snapshot.Remaining())
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	timer, factory := newTestTimer(t)

	require.True(t, timer.Start(25))
	factory.next(t)
	assert.False(t, timer.Start(10))

	snapshot := timer.Snapshot()
	assert.Equal(t, StateRunning, snapshot.State)
	assert.Equal(t, 25, snapshot.Duration)
	assert.Equal(t, "25:00", snapshot.Remaining())
	assert.Empty(t, factory.created, "a second ticker was started")
}

func TestCountdownCompletesAndSuggestsBreak(t *testing.T) {
	timer, factory := newTestTimer(t)

	require.True(t, timer.Start(1))
	ticker := factory.next(t)

	first := advance(t, timer, ticker)
	assert.Equal(t, EventTick, first.Kind)
	assert.Equal(t, 0, first.Minutes)
	assert.Equal(t, 59, first.Seconds)

	for i := 0; i < 58; i++ {
		advance(t, timer, ticker)
	}
	assert.Equal(t, "00:01", timer.Snapshot().Remaining())

	done := advance(t, timer, ticker)
	assert.Equal(t, EventCompleted, done.Kind)
	assert.Equal(t, models.TimerPomodoro, done.Type)
	assert.Equal(t, 1, done.Duration)
	assert.True(t, done.SuggestBreak)
	waitStopped(t, ticker)

	snapshot := timer.Snapshot()
	assert.Equal(t, StateCompleted, snapshot.State)
	assert.Equal(t, "00:00", snapshot.Remaining())
}

func TestBreakCompletionDoesNotSuggestBreak(t *testing.T) {
	timer, factory := newTestTimer(t)
	require.NoError(t, timer.Select(models.TimerShortBreak))

	require.True(t, timer.Start(1))
	ticker := factory.next(t)
	var last Event
	for i := 0; i < 60; i++ {
		last = advance(t, timer, ticker)
	}
	assert.Equal(t, EventCompleted, last.Kind)
	assert.Equal(t, models.TimerShortBreak, last.Type)
	assert.False(t, last.SuggestBreak)
}

func TestMinuteBoundaryBorrowsFromMinutes(t *testing.T) {
	timer, factory := newTestTimer(t)

	require.True(t, timer.Start(25))
	event := advance(t, timer, factory.next(t))
	assert.Equal(t, 24, event.Minutes)
	assert.Equal(t, 59, event.Seconds)
}

func TestPauseFreezesAndResumeContinues(t *testing.T) {
	timer, factory := newTestTimer(t)

	assert.False(t, timer.Pause(), "idle timer cannot pause")
	require.True(t, timer.Start(25))
	ticker := factory.next(t)
	advance(t, timer, ticker)

	assert.False(t, timer.Resume(), "running timer cannot resume")
	require.True(t, timer.Pause())
	waitStopped(t, ticker)
	assert.Equal(t, StatePaused, timer.Snapshot().State)
	assert.Equal(t, "24:59", timer.Snapshot().Remaining())

	require.True(t, timer.Resume())
	event := advance(t, timer, factory.next(t))
	assert.Equal(t, 24, event.Minutes)
	assert.Equal(t, 58, event.Seconds)
}

func TestStartFromPausedBeginsAfresh(t *testing.T) {
	timer, factory := newTestTimer(t)

	require.True(t, timer.Start(25))
	advance(t, timer, factory.next(t))
	require.True(t, timer.Pause())

	require.True(t, timer.Start(15))
	factory.next(t)
	snapshot := timer.Snapshot()
	assert.Equal(t, StateRunning, snapshot.State)
	assert.Equal(t, models.TimerLongBreak, snapshot.Type)
	assert.Equal(t, "15:00", snapshot.Remaining())
}

func TestResetRestoresSelectedPreset(t *testing.T) {
	timer, factory := newTestTimer(t)

	require.NoError(t, timer.Select(models.TimerLongBreak))
	assert.Equal(t, "15:00", timer.Snapshot().Remaining())

	require.True(t, timer.Start(0))
	ticker := factory.next(t)
	advance(t, timer, ticker)

	timer.Reset()
	waitStopped(t, ticker)
	snapshot := timer.Snapshot()
	assert.Equal(t, StateIdle, snapshot.State)
	assert.Equal(t, models.TimerLongBreak, snapshot.Type)
	assert.Equal(t, "15:00", snapshot.Remaining())
}

func TestSelectRejectsUnknownType(t *testing.T) {
	timer, _ := newTestTimer(t)

	assert.Error(t, timer.Select("nap"))
	assert.Equal(t, models.TimerPomodoro, timer.Snapshot().Type)
}

func TestOtherDurationsKeepSelectedType(t *testing.T) {
	timer, factory := newTestTimer(t)
	require.NoError(t, timer.Select(models.TimerShortBreak))

	require.True(t, timer.Start(10))
	factory.next(t)
	snapshot := timer.Snapshot()
	assert.Equal(t, models.TimerShortBreak, snapshot.Type)
	assert.Equal(t, "10:00", snapshot.Remaining())
}

func TestCloseStopsRunningTicker(t *testing.T) {
	factory := newTickerFactory()
	timer := New(WithTicker(factory.newTicker))

	require.True(t, timer.Start(25))
	ticker := factory.next(t)
	timer.Close()
	waitStopped(t, ticker)

	assert.False(t, timer.Start(25))
	assert.False(t, timer.Resume())
}

func TestWallTickerRuns(t *testing.T) {
	timer := New()
	defer timer.Close()

	require.True(t, timer.Start(1))
	select {
	case event := <-timer.Events():
		assert.Equal(t, EventTick, event.Kind)
		assert.Equal(t, 59, event.Seconds)
	case <-time.After(3 * time.Second):
		t.Fatal("wall ticker did not fire")
	}
}
