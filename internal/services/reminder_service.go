package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"go.uber.org/zap"
)

const DefaultReminderInterval = time.Hour

type ReminderUserRepository interface {
	List(ctx context.Context, filter storage.UserFilter) ([]models.User, error)
}

type ReminderSessionRepository interface {
	List(ctx context.Context, filter storage.SessionFilter) ([]models.StudySession, error)
}

// ReminderService sends one daily study reminder per user at the configured
// local hour and one nudge per session that runs past its planned duration.
type ReminderService struct {
	users    ReminderUserRepository
	sessions ReminderSessionRepository
	notifier Notifier
	location *time.Location
	hour     int
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu sync.Mutex
	// daily maps a user id to the local date of the last daily reminder.
	daily map[string]string
	// nudged holds in-progress sessions that were already nudged.
	nudged map[string]struct{}
}

func NewReminderService(users ReminderUserRepository, sessions ReminderSessionRepository, notifier Notifier, location *time.Location, hour int, interval time.Duration, logger *zap.Logger) *ReminderService {
	if location == nil {
		location = time.UTC
	}
	if interval <= 0 {
		interval = DefaultReminderInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		users:    users,
		sessions: sessions,
		notifier: notifier,
		location: location,
		hour:     hour,
		interval: interval,
		logger:   logger.Named("reminders"),
		now:      systemNow,
		daily:    make(map[string]string),
		nudged:   make(map[string]struct{}),
	}
}

// Run blocks until ctx is done, checking once immediately and then on every
// interval.
func (service *ReminderService) Run(ctx context.Context) error {
	ticker := time.NewTicker(service.interval)
	defer ticker.Stop()

	service.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			service.RunOnce(ctx)
		}
	}
}

func (service *ReminderService) RunOnce(ctx context.Context) {
	now := service.now().In(service.location)
	if now.Hour() == service.hour {
		service.sendDailyReminders(ctx, now)
	}
	service.sendSessionNudges(ctx, now)
}

func (service *ReminderService) sendDailyReminders(ctx context.Context, now time.Time) {
	enabled := true
	users, err := service.users.List(ctx, storage.UserFilter{Status: models.UserStatusActive, DailyReminders: &enabled})
	if err != nil {
		service.logger.Error("list users for daily reminders failed", zap.Error(err))
		return
	}

	today := DateAtLocation(now, service.location).Format(dateLayout)
	service.forgetDailyBefore(today)
	for _, user := range users {
		if !service.shouldSendDaily(user.ID, today) {
			continue
		}
		service.deliver(ctx, Reminder{
			UserID: user.ID,
			Kind:   ReminderDailyStudy,
			Text:   fmt.Sprintf("FocusMode reminder for %s: plan a focus session today.", user.Name),
		})
	}
}

func (service *ReminderService) sendSessionNudges(ctx context.Context, now time.Time) {
	enabled := true
	users, err := service.users.List(ctx, storage.UserFilter{Status: models.UserStatusActive, SessionReminders: &enabled})
	if err != nil {
		service.logger.Error("list users for session reminders failed", zap.Error(err))
		return
	}

	running := make(map[string]struct{})
	complete := true
	for _, user := range users {
		sessions, err := service.sessions.List(ctx, storage.SessionFilter{UserID: user.ID, Status: models.SessionInProgress})
		if err != nil {
			service.logger.Error("list running sessions failed", zap.String("user_id", user.ID), zap.Error(err))
			complete = false
			continue
		}
		for _, session := range sessions {
			running[session.ID] = struct{}{}
			if !SessionOverdue(session, now) || !service.shouldNudge(session.ID) {
				continue
			}
			service.deliver(ctx, Reminder{
				UserID: user.ID,
				Kind:   ReminderSessionOverdue,
				Text:   fmt.Sprintf("FocusMode: %q has passed its planned %d minutes. Complete it when you are done.", session.Title, session.Duration),
			})
		}
	}

	// A partial listing cannot tell a finished session from one we failed to read.
	if complete {
		service.forgetNudgesExcept(running)
	}
}

// SessionOverdue reports whether an in-progress session has run longer than
// its planned duration.
func SessionOverdue(session models.StudySession, now time.Time) bool {
	if session.Status != models.SessionInProgress || session.StartedAt == nil {
		return false
	}
	return now.Sub(*session.StartedAt) > time.Duration(session.Duration)*time.Minute
}

func (service *ReminderService) deliver(ctx context.Context, reminder Reminder) {
	if err := service.notifier.Notify(ctx, reminder); err != nil {
		service.logger.Warn("send reminder failed",
			zap.String("user_id", reminder.UserID),
			zap.String("kind", reminder.Kind),
			zap.Error(err),
		)
	}
}

func (service *ReminderService) shouldSendDaily(userID string, today string) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.daily[userID] == today {
		return false
	}
	service.daily[userID] = today
	return true
}

func (service *ReminderService) forgetDailyBefore(today string) {
	service.mu.Lock()
	defer service.mu.Unlock()

	for userID, sentOn := range service.daily {
		if sentOn != today {
			delete(service.daily, userID)
		}
	}
}

func (service *ReminderService) shouldNudge(sessionID string) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if _, ok := service.nudged[sessionID]; ok {
		return false
	}
	service.nudged[sessionID] = struct{}{}
	return true
}

func (service *ReminderService) forgetNudgesExcept(running map[string]struct{}) {
	service.mu.Lock()
	defer service.mu.Unlock()

	for sessionID := range service.nudged {
		if _, ok := running[sessionID]; !ok {
			delete(service.nudged, sessionID)
		}
	}
}
