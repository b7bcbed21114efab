package models

import "time"

const (
	TimerPomodoro   = "pomodoro"
	TimerShortBreak = "short-break"
	TimerLongBreak  = "long-break"
)

const (
	DefaultPomodoroMinutes   = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
)

// FocusTimer is the durable log entry of one timer run.
type FocusTimer struct {
	ID              string     `gorm:"primaryKey" json:"id"`
	UserID          string     `gorm:"not null;index" json:"user_id"`
	TimerType       string     `gorm:"not null" json:"timer_type"`
	Duration        int        `gorm:"not null" json:"duration"`
	TaskDescription string     `json:"task_description"`
	Completed       bool       `gorm:"not null;default:false" json:"completed"`
	StartedAt       time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

func IsValidTimerType(timerType string) bool {
	switch timerType {
	case TimerPomodoro, TimerShortBreak, TimerLongBreak:
		return true
	default:
		return false
	}
}

// CanonicalTimerMinutes returns the preset duration of a timer type.
func CanonicalTimerMinutes(timerType string) int {
	switch timerType {
	case TimerShortBreak:
		return DefaultShortBreakMinutes
	case TimerLongBreak:
		return DefaultLongBreakMinutes
	default:
		return DefaultPomodoroMinutes
	}
}
