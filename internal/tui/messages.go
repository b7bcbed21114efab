package tui

import "github.com/focusmode/focusmode/internal/timer"

// TimerEventMsg wraps one event read from the timer.
type TimerEventMsg struct {
	Event timer.Event
}

// RecordedMsg reports the outcome of saving a finished run.
type RecordedMsg struct {
	Err error
}
