package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	UserStatusActive = "active"
	DefaultAvatar    = "U"
)

type User struct {
	ID                string     `gorm:"primaryKey" json:"id"`
	Name              string     `gorm:"not null" json:"name"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Avatar            string     `gorm:"not null;default:U" json:"avatar"`
	Status            string     `gorm:"not null;default:active" json:"-"`
	PushEnabled       bool       `gorm:"not null;default:false" json:"push_enabled"`
	DailyReminders    bool       `gorm:"not null" json:"daily_reminders"`
	SessionReminders  bool       `gorm:"not null" json:"session_reminders"`
	AchievementAlerts bool       `gorm:"not null" json:"achievement_alerts"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// NotificationSettings is the mutable preference subset of a user.
type NotificationSettings struct {
	PushEnabled       bool `json:"push_enabled"`
	DailyReminders    bool `json:"daily_reminders"`
	SessionReminders  bool `json:"session_reminders"`
	AchievementAlerts bool `json:"achievement_alerts"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		PushEnabled:       false,
		DailyReminders:    true,
		SessionReminders:  true,
		AchievementAlerts: true,
	}
}

func (user *User) Settings() NotificationSettings {
	return NotificationSettings{
		PushEnabled:       user.PushEnabled,
		DailyReminders:    user.DailyReminders,
		SessionReminders:  user.SessionReminders,
		AchievementAlerts: user.AchievementAlerts,
	}
}

func (user *User) ApplySettings(settings NotificationSettings) {
	user.PushEnabled = settings.PushEnabled
	user.DailyReminders = settings.DailyReminders
	user.SessionReminders = settings.SessionReminders
	user.AchievementAlerts = settings.AchievementAlerts
}

// AvatarFromName returns the upper-cased first letter of name.
func AvatarFromName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return DefaultAvatar
	}
	first, _ := utf8.DecodeRuneInString(trimmed)
	return string(unicode.ToUpper(first))
}
