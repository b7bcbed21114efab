package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"github.com/google/uuid"
)

type SessionInput struct {
	Title       string
	Description string
	Subject     string
	Duration    int
}

type SessionUpdate struct {
	Title       *string
	Description *string
	Subject     *string
	Duration    *int
}

// SessionService owns the planned → inprogress → completed lifecycle.
// Completed is terminal.
type SessionService struct {
	sessions storage.SessionRepository
	now      func() time.Time
}

func NewSessionService(sessions storage.SessionRepository) *SessionService {
	return &SessionService{sessions: sessions, now: systemNow}
}

func (service *SessionService) Create(ctx context.Context, userID string, input SessionInput) (models.StudySession, error) {
	title := strings.TrimSpace(input.Title)
	subject := strings.TrimSpace(input.Subject)
	if title == "" {
		return models.StudySession{}, invalid("title", "Title is required")
	}
	if subject == "" {
		return models.StudySession{}, invalid("subject", "Subject is required")
	}
	if err := validateSessionDuration(input.Duration); err != nil {
		return models.StudySession{}, err
	}

	now := service.now()
	session := models.StudySession{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Subject:     subject,
		Duration:    input.Duration,
		Status:      models.SessionPlanned,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := service.sessions.Create(ctx, &session); err != nil {
		return models.StudySession{}, storeFailure(err)
	}
	return session, nil
}

func (service *SessionService) Get(ctx context.Context, userID string, id string) (models.StudySession, error) {
	session, err := service.sessions.Get(ctx, userID, id)
	if err != nil {
		return models.StudySession{}, storeFailure(err)
	}
	return session, nil
}

// List returns the user's sessions newest first. An empty status lists all.
func (service *SessionService) List(ctx context.Context, userID string, status string) ([]models.StudySession, error) {
	status = strings.TrimSpace(status)
	if status != "" && !models.IsValidSessionStatus(status) {
		return nil, invalid("status", "Unknown session status")
	}
	sessions, err := service.sessions.List(ctx, storage.SessionFilter{UserID: userID, Status: status})
	if err != nil {
		return nil, storeFailure(err)
	}
	return sessions, nil
}

func (service *SessionService) Start(ctx context.Context, userID string, id string) (models.StudySession, error) {
	return service.transition(ctx, userID, id, models.SessionPlanned, models.SessionInProgress)
}

func (service *SessionService) Complete(ctx context.Context, userID string, id string) (models.StudySession, error) {
	return service.transition(ctx, userID, id, models.SessionInProgress, models.SessionCompleted)
}

func (service *SessionService) transition(ctx context.Context, userID string, id string, from string, to string) (models.StudySession, error) {
	err := service.sessions.Transition(ctx, userID, id, storage.StatusChange{
		From: from,
		To:   to,
		At:   service.now(),
	})
	if errors.Is(err, storage.ErrStatusMismatch) {
		return models.StudySession{}, fmt.Errorf("%w: session must be %s to become %s", ErrInvalidTransition, from, to)
	}
	if err != nil {
		return models.StudySession{}, storeFailure(err)
	}
	return service.Get(ctx, userID, id)
}

// Update edits the descriptive fields of a session that is not completed.
// Status and lifecycle stamps are never touched.
func (service *SessionService) Update(ctx context.Context, userID string, id string, update SessionUpdate) (models.StudySession, error) {
	current, err := service.Get(ctx, userID, id)
	if err != nil {
		return models.StudySession{}, err
	}
	if current.Status == models.SessionCompleted {
		return models.StudySession{}, fmt.Errorf("%w: completed sessions are read-only", ErrInvalidTransition)
	}

	patch := storage.SessionPatch{UpdatedAt: service.now()}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return models.StudySession{}, invalid("title", "Title is required")
		}
		patch.Title = &title
	}
	if update.Subject != nil {
		subject := strings.TrimSpace(*update.Subject)
		if subject == "" {
			return models.StudySession{}, invalid("subject", "Subject is required")
		}
		patch.Subject = &subject
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		patch.Description = &description
	}
	if update.Duration != nil {
		if err := validateSessionDuration(*update.Duration); err != nil {
			return models.StudySession{}, err
		}
		patch.Duration = update.Duration
	}

	if err := service.sessions.Update(ctx, userID, id, patch); err != nil {
		return models.StudySession{}, storeFailure(err)
	}
	return service.Get(ctx, userID, id)
}

func (service *SessionService) Delete(ctx context.Context, userID string, id string) error {
	return storeFailure(service.sessions.Delete(ctx, userID, id))
}

func validateSessionDuration(minutes int) error {
	if minutes < models.MinSessionDuration || minutes > models.MaxSessionDuration {
		return invalid("duration", fmt.Sprintf("Duration must be between %d and %d minutes", models.MinSessionDuration, models.MaxSessionDuration))
	}
	return nil
}
