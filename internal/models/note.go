package models

import "time"

const (
	NoteCategoryStudy    = "study"
	NoteCategoryPersonal = "personal"
	NoteCategoryWork     = "work"
	NoteCategoryOther    = "other"
)

type Note struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `json:"content"`
	Category  string    `gorm:"not null;default:study" json:"category"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidNoteCategory(category string) bool {
	switch category {
	case NoteCategoryStudy, NoteCategoryPersonal, NoteCategoryWork, NoteCategoryOther:
		return true
	default:
		return false
	}
}
