package api

import (
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/services"
	"github.com/focusmode/focusmode/internal/storage"
	"go.uber.org/zap"
)

const (
	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	store    storage.Store
	secret   []byte
	tokenTTL time.Duration
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time

	loginLimiter *attemptLimiter

	authService     *services.AuthService
	sessionService  *services.SessionService
	noteService     *services.NoteService
	bookService     *services.BookService
	timerService    *services.TimerLogService
	statsService    *services.StatsService
	settingsService *services.SettingsService
}

type Options struct {
	Secret   []byte
	TokenTTL time.Duration
	Location *time.Location
	Logger   *zap.Logger
}

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type deleteAccountInput struct {
	Password string `json:"password"`
}

type sessionPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Subject     *string `json:"subject"`
	Duration    *int    `json:"duration"`
}

type notePayload struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

type bookPayload struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

type timerPayload struct {
	TimerType       string `json:"timer_type"`
	Duration        int    `json:"duration"`
	TaskDescription string `json:"task_description"`
	Completed       bool   `json:"completed"`
}

type settingsPayload struct {
	PushEnabled       *bool `json:"push_enabled"`
	DailyReminders    *bool `json:"daily_reminders"`
	SessionReminders  *bool `json:"session_reminders"`
	AchievementAlerts *bool `json:"achievement_alerts"`
}

type userView struct {
	ID       string                       `json:"id"`
	Name     string                       `json:"name"`
	Email    string                       `json:"email"`
	Avatar   string                       `json:"avatar"`
	Settings *models.NotificationSettings `json:"settings,omitempty"`
}
