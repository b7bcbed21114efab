package db

import (
	"context"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"gorm.io/gorm"
)

type SessionRepository struct {
	conn connFunc
}

func (repo *SessionRepository) Create(ctx context.Context, session *models.StudySession) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("sessions.create", err)
	}
	session.CreatedAt = session.CreatedAt.UTC()
	session.UpdatedAt = session.UpdatedAt.UTC()
	session.StartedAt = utcPointer(session.StartedAt)
	session.CompletedAt = utcPointer(session.CompletedAt)
	return failure("sessions.create", database.Create(session).Error)
}

func (repo *SessionRepository) Get(ctx context.Context, userID string, id string) (models.StudySession, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return models.StudySession{}, failure("sessions.get", err)
	}
	var session models.StudySession
	if err := database.Where("id = ? AND user_id = ?", id, userID).First(&session).Error; err != nil {
		return models.StudySession{}, failure("sessions.get", err)
	}
	return session, nil
}

func (repo *SessionRepository) List(ctx context.Context, filter storage.SessionFilter) ([]models.StudySession, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return nil, failure("sessions.list", err)
	}
	sessions := make([]models.StudySession, 0)
	if err := sessionQuery(database, filter).Order("created_at DESC, id DESC").Find(&sessions).Error; err != nil {
		return nil, failure("sessions.list", err)
	}
	return sessions, nil
}

func (repo *SessionRepository) Count(ctx context.Context, filter storage.SessionFilter) (int64, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return 0, failure("sessions.count", err)
	}
	var count int64
	if err := sessionQuery(database, filter).Count(&count).Error; err != nil {
		return 0, failure("sessions.count", err)
	}
	return count, nil
}

func (repo *SessionRepository) Update(ctx context.Context, userID string, id string, patch storage.SessionPatch) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("sessions.update", err)
	}

	updates := map[string]any{"updated_at": patch.UpdatedAt.UTC()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Subject != nil {
		updates["subject"] = *patch.Subject
	}
	if patch.Duration != nil {
		updates["duration"] = *patch.Duration
	}

	result := database.Model(&models.StudySession{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return failure("sessions.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return failure("sessions.update", storage.ErrNotFound)
	}
	return nil
}

func (repo *SessionRepository) Transition(ctx context.Context, userID string, id string, change storage.StatusChange) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("sessions.transition", err)
	}

	at := change.At.UTC()
	updates := map[string]any{
		"status":     change.To,
		"updated_at": at,
	}
	switch change.To {
	case models.SessionInProgress:
		updates["started_at"] = at
	case models.SessionCompleted:
		updates["completed_at"] = at
	}

	result := database.Model(&models.StudySession{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, change.From).
		Updates(updates)
	if result.Error != nil {
		return failure("sessions.transition", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var matched int64
	if err := database.Model(&models.StudySession{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&matched).Error; err != nil {
		return failure("sessions.transition", err)
	}
	if matched == 0 {
		return failure("sessions.transition", storage.ErrNotFound)
	}
	return failure("sessions.transition", storage.ErrStatusMismatch)
}

func (repo *SessionRepository) Delete(ctx context.Context, userID string, id string) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("sessions.delete", err)
	}
	result := database.Where("id = ? AND user_id = ?", id, userID).Delete(&models.StudySession{})
	if result.Error != nil {
		return failure("sessions.delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return failure("sessions.delete", storage.ErrNotFound)
	}
	return nil
}

func sessionQuery(database *gorm.DB, filter storage.SessionFilter) *gorm.DB {
	query := database.Model(&models.StudySession{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.CreatedFrom.IsZero() {
		query = query.Where("created_at >= ?", filter.CreatedFrom.UTC())
	}
	if !filter.CreatedTo.IsZero() {
		query = query.Where("created_at < ?", filter.CreatedTo.UTC())
	}
	return query
}

func utcPointer(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	normalized := value.UTC()
	return &normalized
}
