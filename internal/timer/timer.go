// Package timer implements the client-side focus timer: a countdown with
// pomodoro and break presets that reports progress on a channel.
package timer

import (
	"fmt"
	"sync"
	"time"

	"github.com/focusmode/focusmode/internal/models"
)

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

type EventKind int

const (
	EventTick EventKind = iota
	EventCompleted
)

// Event is emitted once per elapsed second and once on completion. Duration
// is the length of the run in minutes. SuggestBreak is set when a pomodoro
// completes; the timer never starts the break by itself.
type Event struct {
	Kind         EventKind
	Type         string
	Duration     int
	Minutes      int
	Seconds      int
	SuggestBreak bool
}

type Snapshot struct {
	State    State
	Type     string
	Duration int
	Minutes  int
	Seconds  int
}

// Remaining formats the counters as MM:SS.
func (snapshot Snapshot) Remaining() string {
	return fmt.Sprintf("%02d:%02d", snapshot.Minutes, snapshot.Seconds)
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFunc func(interval time.Duration) Ticker

type Option func(*Timer)

// WithTicker replaces the one-second wall clock ticker.
func WithTicker(newTicker TickerFunc) Option {
	return func(timer *Timer) {
		timer.newTicker = newTicker
	}
}

type Timer struct {
	mu        sync.Mutex
	state     State
	timerType string
	duration  int
	minutes   int
	seconds   int

	newTicker TickerFunc
	stop      chan struct{}
	events    chan Event
	closed    chan struct{}
	closeOnce sync.Once
	workers   sync.WaitGroup
}

func New(options ...Option) *Timer {
	timer := &Timer{
		state:     StateIdle,
		timerType: models.TimerPomodoro,
		newTicker: newWallTicker,
		events:    make(chan Event, 16),
		closed:    make(chan struct{}),
	}
	for _, option := range options {
		option(timer)
	}
	timer.resetCountersLocked()
	return timer
}

func (timer *Timer) Events() <-chan Event {
	return timer.events
}

func (timer *Timer) Snapshot() Snapshot {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.snapshotLocked()
}

// Start begins a run of minutes. It is a no-op returning false while a run is
// in progress. A paused run is discarded, a completed one replaced. 25, 5 and
// 15 select the matching preset; minutes <= 0 uses the selected preset.
func (timer *Timer) Start(minutes int) bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	if timer.isClosed() || timer.state == StateRunning {
		return false
	}
	timer.stopLocked()

	switch minutes {
	case models.DefaultPomodoroMinutes:
		timer.timerType = models.TimerPomodoro
	case models.DefaultShortBreakMinutes:
		timer.timerType = models.TimerShortBreak
	case models.DefaultLongBreakMinutes:
		timer.timerType = models.TimerLongBreak
	}
	if minutes <= 0 {
		minutes = models.CanonicalTimerMinutes(timer.timerType)
	}

	timer.duration = minutes
	timer.minutes = minutes
	timer.seconds = 0
	timer.state = StateRunning
	timer.startLocked()
	return true
}

func (timer *Timer) Pause() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	if timer.state != StateRunning {
		return false
	}
	timer.stopLocked()
	timer.state = StatePaused
	return true
}

func (timer *Timer) Resume() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	if timer.isClosed() || timer.state != StatePaused {
		return false
	}
	timer.state = StateRunning
	timer.startLocked()
	return true
}

// Reset stops any run and restores the preset of the selected type.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	timer.stopLocked()
	timer.state = StateIdle
	timer.resetCountersLocked()
}

// Select switches the preset and resets.
func (timer *Timer) Select(timerType string) error {
	if !models.IsValidTimerType(timerType) {
		return fmt.Errorf("unknown timer type %q", timerType)
	}

	timer.mu.Lock()
	defer timer.mu.Unlock()

	timer.stopLocked()
	timer.timerType = timerType
	timer.state = StateIdle
	timer.resetCountersLocked()
	return nil
}

// Close stops the ticker goroutine and waits for it to exit. The timer cannot
// be started again.
func (timer *Timer) Close() {
	timer.mu.Lock()
	timer.stopLocked()
	timer.closeOnce.Do(func() { close(timer.closed) })
	timer.mu.Unlock()

	timer.workers.Wait()
}

func (timer *Timer) startLocked() {
	stop := make(chan struct{})
	timer.stop = stop
	ticker := timer.newTicker(time.Second)

	timer.workers.Add(1)
	go timer.run(ticker, stop)
}

func (timer *Timer) stopLocked() {
	if timer.stop != nil {
		close(timer.stop)
		timer.stop = nil
	}
}

func (timer *Timer) run(ticker Ticker, stop chan struct{}) {
	defer timer.workers.Done()
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			event, ok := timer.tick(stop)
			if !ok {
				return
			}
			if event.Kind == EventCompleted {
				select {
				case timer.events <- event:
				case <-timer.closed:
				}
				return
			}
			select {
			case timer.events <- event:
			default:
			}
		}
	}
}

// tick advances the countdown by one second. It reports false when stop no
// longer belongs to the current run.
func (timer *Timer) tick(stop chan struct{}) (Event, bool) {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	if timer.stop != stop || timer.state != StateRunning {
		return Event{}, false
	}

	if timer.seconds == 0 {
		timer.minutes--
		timer.seconds = 59
	} else {
		timer.seconds--
	}

	event := Event{
		Kind:     EventTick,
		Type:     timer.timerType,
		Duration: timer.duration,
		Minutes:  timer.minutes,
		Seconds:  timer.seconds,
	}
	if timer.minutes <= 0 && timer.seconds == 0 {
		timer.minutes, timer.seconds = 0, 0
		timer.state = StateCompleted
		timer.stop = nil
		event.Kind = EventCompleted
		event.Minutes, event.Seconds = 0, 0
		event.SuggestBreak = timer.timerType == models.TimerPomodoro
	}
	return event, true
}

func (timer *Timer) resetCountersLocked() {
	timer.duration = models.CanonicalTimerMinutes(timer.timerType)
	timer.minutes = timer.duration
	timer.seconds = 0
}

func (timer *Timer) snapshotLocked() Snapshot {
	return Snapshot{
		State:    timer.state,
		Type:     timer.timerType,
		Duration: timer.duration,
		Minutes:  timer.minutes,
		Seconds:  timer.seconds,
	}
}

func (timer *Timer) isClosed() bool {
	select {
	case <-timer.closed:
		return true
	default:
		return false
	}
}

type wallTicker struct {
	ticker *time.Ticker
}

func newWallTicker(interval time.Duration) Ticker {
	return wallTicker{ticker: time.NewTicker(interval)}
}

func (ticker wallTicker) C() <-chan time.Time { return ticker.ticker.C }
func (ticker wallTicker) Stop()               { ticker.ticker.Stop() }
