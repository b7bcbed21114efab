package models

import "time"

const (
	BookCategoryAcademic   = "academic"
	BookCategoryFiction    = "fiction"
	BookCategoryNonFiction = "non-fiction"
	BookCategoryReference  = "reference"
)

type Book struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Author      string    `gorm:"not null" json:"author"`
	Description string    `json:"description"`
	Category    string    `gorm:"not null;default:academic" json:"category"`
	IsComplete  bool      `gorm:"not null;default:false" json:"is_complete"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func IsValidBookCategory(category string) bool {
	switch category {
	case BookCategoryAcademic, BookCategoryFiction, BookCategoryNonFiction, BookCategoryReference:
		return true
	default:
		return false
	}
}
