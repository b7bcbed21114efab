package models

import "time"

const (
	SessionPlanned    = "planned"
	SessionInProgress = "inprogress"
	SessionCompleted  = "completed"
)

const (
	MinSessionDuration = 5
	MaxSessionDuration = 180
)

type StudySession struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"not null;index" json:"user_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Subject     string     `gorm:"not null" json:"subject"`
	Duration    int        `gorm:"not null" json:"duration"`
	Status      string     `gorm:"not null;default:planned;index" json:"status"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func IsValidSessionStatus(status string) bool {
	switch status {
	case SessionPlanned, SessionInProgress, SessionCompleted:
		return true
	default:
		return false
	}
}
