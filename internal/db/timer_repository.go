package db

import (
	"context"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
)

type TimerRepository struct {
	conn connFunc
}

func (repo *TimerRepository) Create(ctx context.Context, timer *models.FocusTimer) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("timers.create", err)
	}
	timer.StartedAt = timer.StartedAt.UTC()
	timer.CompletedAt = utcPointer(timer.CompletedAt)
	return failure("timers.create", database.Create(timer).Error)
}

func (repo *TimerRepository) Get(ctx context.Context, userID string, id string) (models.FocusTimer, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return models.FocusTimer{}, failure("timers.get", err)
	}
	var timer models.FocusTimer
	if err := database.Where("id = ? AND user_id = ?", id, userID).First(&timer).Error; err != nil {
		return models.FocusTimer{}, failure("timers.get", err)
	}
	return timer, nil
}

func (repo *TimerRepository) List(ctx context.Context, filter storage.TimerFilter) ([]models.FocusTimer, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return nil, failure("timers.list", err)
	}

	query := database.Where("user_id = ?", filter.UserID).Order("started_at DESC, id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	timers := make([]models.FocusTimer, 0)
	if err := query.Find(&timers).Error; err != nil {
		return nil, failure("timers.list", err)
	}
	return timers, nil
}

func (repo *TimerRepository) MarkCompleted(ctx context.Context, userID string, id string, at time.Time) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("timers.mark_completed", err)
	}
	result := database.Model(&models.FocusTimer{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"completed":    true,
			"completed_at": at.UTC(),
		})
	if result.Error != nil {
		return failure("timers.mark_completed", result.Error)
	}
	if result.RowsAffected == 0 {
		return failure("timers.mark_completed", storage.ErrNotFound)
	}
	return nil
}
