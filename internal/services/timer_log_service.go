package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"github.com/google/uuid"
)

const (
	TimerHistoryLimit = 50
	maxTimerMinutes   = 180
)

type TimerInput struct {
	TimerType       string
	Duration        int
	TaskDescription string
	Completed       bool
}

// TimerLogService keeps the durable history of focus timer runs.
type TimerLogService struct {
	timers storage.TimerRepository
	now    func() time.Time
}

func NewTimerLogService(timers storage.TimerRepository) *TimerLogService {
	return &TimerLogService{timers: timers, now: systemNow}
}

func (service *TimerLogService) Record(ctx context.Context, userID string, input TimerInput) (models.FocusTimer, error) {
	timerType := strings.TrimSpace(input.TimerType)
	if !models.IsValidTimerType(timerType) {
		return models.FocusTimer{}, invalid("timer_type", "Timer type must be pomodoro, short-break or long-break")
	}
	if input.Duration < 1 || input.Duration > maxTimerMinutes {
		return models.FocusTimer{}, invalid("duration", fmt.Sprintf("Duration must be between 1 and %d minutes", maxTimerMinutes))
	}

	now := service.now()
	timer := models.FocusTimer{
		ID:              uuid.NewString(),
		UserID:          userID,
		TimerType:       timerType,
		Duration:        input.Duration,
		TaskDescription: strings.TrimSpace(input.TaskDescription),
		Completed:       input.Completed,
		StartedAt:       now,
	}
	if input.Completed {
		timer.StartedAt = now.Add(-time.Duration(input.Duration) * time.Minute)
		timer.CompletedAt = &now
	}
	if err := service.timers.Create(ctx, &timer); err != nil {
		return models.FocusTimer{}, storeFailure(err)
	}
	return timer, nil
}

func (service *TimerLogService) Complete(ctx context.Context, userID string, id string) (models.FocusTimer, error) {
	if err := service.timers.MarkCompleted(ctx, userID, id, service.now()); err != nil {
		return models.FocusTimer{}, storeFailure(err)
	}
	timer, err := service.timers.Get(ctx, userID, id)
	if err != nil {
		return models.FocusTimer{}, storeFailure(err)
	}
	return timer, nil
}

func (service *TimerLogService) List(ctx context.Context, userID string) ([]models.FocusTimer, error) {
	timers, err := service.timers.List(ctx, storage.TimerFilter{UserID: userID, Limit: TimerHistoryLimit})
	if err != nil {
		return nil, storeFailure(err)
	}
	return timers, nil
}
