package memstore

import (
	"context"
	"sort"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
)

type sessionRepository struct{ store *Store }

func (r sessionRepository) Create(ctx context.Context, session *models.StudySession) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("sessions.create", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.sessions[session.ID]; exists {
		return storage.Wrap("sessions.create", storage.ErrDuplicate)
	}
	if _, exists := r.store.users[session.UserID]; !exists {
		return notFound("sessions.create")
	}
	r.store.sessions[session.ID] = copySession(*session)
	return nil
}

func (r sessionRepository) Get(ctx context.Context, userID string, id string) (models.StudySession, error) {
	if err := ctx.Err(); err != nil {
		return models.StudySession{}, storage.Wrap("sessions.get", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	session, ok := r.store.sessions[id]
	if !ok || session.UserID != userID {
		return models.StudySession{}, notFound("sessions.get")
	}
	return copySession(session), nil
}

func (r sessionRepository) List(ctx context.Context, filter storage.SessionFilter) ([]models.StudySession, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.Wrap("sessions.list", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sessions := r.matching(filter)
	sort.Slice(sessions, func(i, j int) bool {
		return newestFirst(sessions[i].CreatedAt, sessions[i].ID, sessions[j].CreatedAt, sessions[j].ID)
	})
	return sessions, nil
}

func (r sessionRepository) Count(ctx context.Context, filter storage.SessionFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, storage.Wrap("sessions.count", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return int64(len(r.matching(filter))), nil
}

func (r sessionRepository) Update(ctx context.Context, userID string, id string, patch storage.SessionPatch) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("sessions.update", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	session, ok := r.store.sessions[id]
	if !ok || session.UserID != userID {
		return notFound("sessions.update")
	}
	if patch.Title != nil {
		session.Title = *patch.Title
	}
	if patch.Description != nil {
		session.Description = *patch.Description
	}
	if patch.Subject != nil {
		session.Subject = *patch.Subject
	}
	if patch.Duration != nil {
		session.Duration = *patch.Duration
	}
	session.UpdatedAt = patch.UpdatedAt
	r.store.sessions[id] = session
	return nil
}

func (r sessionRepository) Transition(ctx context.Context, userID string, id string, change storage.StatusChange) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("sessions.transition", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	session, ok := r.store.sessions[id]
	if !ok || session.UserID != userID {
		return notFound("sessions.transition")
	}
	if session.Status != change.From {
		return storage.Wrap("sessions.transition", storage.ErrStatusMismatch)
	}

	at := change.At
	session.Status = change.To
	session.UpdatedAt = at
	switch change.To {
	case models.SessionInProgress:
		session.StartedAt = &at
	case models.SessionCompleted:
		session.CompletedAt = &at
	}
	r.store.sessions[id] = session
	return nil
}

func (r sessionRepository) Delete(ctx context.Context, userID string, id string) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("sessions.delete", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	session, ok := r.store.sessions[id]
	if !ok || session.UserID != userID {
		return notFound("sessions.delete")
	}
	delete(r.store.sessions, id)
	return nil
}

// matching expects the read lock held.
func (r sessionRepository) matching(filter storage.SessionFilter) []models.StudySession {
	sessions := make([]models.StudySession, 0)
	for _, session := range r.store.sessions {
		if filter.UserID != "" && session.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && session.Status != filter.Status {
			continue
		}
		if !filter.CreatedFrom.IsZero() && session.CreatedAt.Before(filter.CreatedFrom) {
			continue
		}
		if !filter.CreatedTo.IsZero() && !session.CreatedAt.Before(filter.CreatedTo) {
			continue
		}
		sessions = append(sessions, copySession(session))
	}
	return sessions
}

func copySession(session models.StudySession) models.StudySession {
	session.StartedAt = cloneTime(session.StartedAt)
	session.CompletedAt = cloneTime(session.CompletedAt)
	return session
}
