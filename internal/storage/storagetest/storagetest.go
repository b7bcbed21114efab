// Package storagetest holds the behavioural suite every storage.Store
// backend must pass.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store. Cleanup is the factory's job.
type Factory func(t *testing.T) storage.Store

var base = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func Run(t *testing.T, newStore Factory) {
	t.Run("UserLifecycle", func(t *testing.T) { testUserLifecycle(t, newStore(t)) })
	t.Run("DuplicateEmail", func(t *testing.T) { testDuplicateEmail(t, newStore(t)) })
	t.Run("UserListFilters", func(t *testing.T) { testUserListFilters(t, newStore(t)) })
	t.Run("SessionOwnership", func(t *testing.T) { testSessionOwnership(t, newStore(t)) })
	t.Run("SessionListFilters", func(t *testing.T) { testSessionListFilters(t, newStore(t)) })
	t.Run("SessionTransition", func(t *testing.T) { testSessionTransition(t, newStore(t)) })
	t.Run("SessionPatch", func(t *testing.T) { testSessionPatch(t, newStore(t)) })
	t.Run("NoteCategories", func(t *testing.T) { testNoteCategories(t, newStore(t)) })
	t.Run("BookToggle", func(t *testing.T) { testBookToggle(t, newStore(t)) })
	t.Run("TimerLimit", func(t *testing.T) { testTimerLimit(t, newStore(t)) })
	t.Run("DeleteCascade", func(t *testing.T) { testDeleteCascade(t, newStore(t)) })
	t.Run("CreateWithMissingOwner", func(t *testing.T) { testCreateWithMissingOwner(t, newStore(t)) })
	t.Run("ErrorsAreStoreErrors", func(t *testing.T) { testErrorsAreStoreErrors(t, newStore(t)) })
}

func seedUser(t *testing.T, store storage.Store, email string) models.User {
	t.Helper()
	settings := models.DefaultNotificationSettings()
	user := models.User{
		ID:           uuid.NewString(),
		Name:         "Test " + email,
		Email:        email,
		PasswordHash: "hash",
		Avatar:       "T",
		Status:       models.UserStatusActive,
		CreatedAt:    base,
		UpdatedAt:    base,
	}
	user.ApplySettings(settings)
	require.NoError(t, store.Users().Create(context.Background(), &user))
	return user
}

func seedSession(t *testing.T, store storage.Store, userID string, status string, createdAt time.Time) models.StudySession {
	t.Helper()
	session := models.StudySession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     "Cells",
		Subject:   "Biology",
		Duration:  30,
		Status:    status,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, store.Sessions().Create(context.Background(), &session))
	return session
}

func testUserLifecycle(t *testing.T, store storage.Store) {
	ctx := context.Background()
	user := seedUser(t, store, "ada@example.com")

	byID, err := store.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)
	assert.True(t, byID.DailyReminders)
	assert.False(t, byID.PushEnabled)

	byEmail, err := store.Users().FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	exists, err := store.Users().ExistsByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = store.Users().ExistsByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	name := "Grace"
	loginAt := base.Add(time.Hour)
	settings := models.NotificationSettings{PushEnabled: true}
	require.NoError(t, store.Users().Update(ctx, user.ID, storage.UserPatch{
		Name:        &name,
		LastLoginAt: &loginAt,
		Settings:    &settings,
		UpdatedAt:   loginAt,
	}))

	updated, err := store.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.Name)
	assert.Equal(t, "G", updated.Avatar)
	assert.Equal(t, settings, updated.Settings())
	require.NotNil(t, updated.LastLoginAt)
	assert.True(t, updated.LastLoginAt.Equal(loginAt))

	err = store.Users().Update(ctx, uuid.NewString(), storage.UserPatch{UpdatedAt: base})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.Users().FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testDuplicateEmail(t *testing.T, store storage.Store) {
	ctx := context.Background()
	seedUser(t, store, "dup@example.com")

	again := models.User{
		ID:           uuid.NewString(),
		Name:         "Other",
		Email:        "dup@example.com",
		PasswordHash: "hash",
		Status:       models.UserStatusActive,
		CreatedAt:    base,
	}
	err := store.Users().Create(ctx, &again)
	require.ErrorIs(t, err, storage.ErrDuplicate)

	users, err := store.Users().List(ctx, storage.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func testUserListFilters(t *testing.T, store storage.Store) {
	ctx := context.Background()
	first := seedUser(t, store, "first@example.com")
	second := seedUser(t, store, "second@example.com")

	off := models.NotificationSettings{SessionReminders: true}
	require.NoError(t, store.Users().Update(ctx, second.ID, storage.UserPatch{Settings: &off, UpdatedAt: base}))

	enabled := true
	daily, err := store.Users().List(ctx, storage.UserFilter{Status: models.UserStatusActive, DailyReminders: &enabled})
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, first.ID, daily[0].ID)

	nudged, err := store.Users().List(ctx, storage.UserFilter{SessionReminders: &enabled})
	require.NoError(t, err)
	assert.Len(t, nudged, 2)
}

func testSessionOwnership(t *testing.T, store storage.Store) {
	ctx := context.Background()
	owner := seedUser(t, store, "owner@example.com")
	intruder := seedUser(t, store, "intruder@example.com")
	session := seedSession(t, store, owner.ID, models.SessionPlanned, base)

	_, err := store.Sessions().Get(ctx, intruder.ID, session.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	title := "Stolen"
	err = store.Sessions().Update(ctx, intruder.ID, session.ID, storage.SessionPatch{Title: &title, UpdatedAt: base})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = store.Sessions().Transition(ctx, intruder.ID, session.ID, storage.StatusChange{
		From: models.SessionPlanned, To: models.SessionInProgress, At: base,
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, store.Sessions().Delete(ctx, intruder.ID, session.ID), storage.ErrNotFound)

	stored, err := store.Sessions().Get(ctx, owner.ID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cells", stored.Title)
	assert.Equal(t, models.SessionPlanned, stored.Status)

	require.NoError(t, store.Sessions().Delete(ctx, owner.ID, session.ID))
	_, err = store.Sessions().Get(ctx, owner.ID, session.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testSessionListFilters(t *testing.T, store storage.Store) {
	ctx := context.Background()
	user := seedUser(t, store, "list@example.com")
	other := seedUser(t, store, "other@example.com")

	oldest := seedSession(t, store, user.ID, models.SessionCompleted, base.Add(-48*time.Hour))
	middle := seedSession(t, store, user.ID, models.SessionPlanned, base.Add(-time.Hour))
	newest := seedSession(t, store, user.ID, models.SessionCompleted, base)
	seedSession(t, store, other.ID, models.SessionCompleted, base)

	all, err := store.Sessions().List(ctx, storage.SessionFilter{UserID: user.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{newest.ID, middle.ID, oldest.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	completed, err := store.Sessions().List(ctx, storage.SessionFilter{UserID: user.ID, Status: models.SessionCompleted})
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	window, err := store.Sessions().List(ctx, storage.SessionFilter{
		UserID:      user.ID,
		CreatedFrom: base.Add(-24 * time.Hour),
		CreatedTo:   base,
	})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, middle.ID, window[0].ID)

	count, err := store.Sessions().Count(ctx, storage.SessionFilter{UserID: user.ID, Status: models.SessionCompleted})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func testSessionTransition(t *testing.T, store storage.Store) {
	ctx := context.Background()
	user := seedUser(t, store, "transit@example.com")
	session := seedSession(t, store, user.ID, models.SessionPlanned, base)

	startedAt := base.Add(time.Minute)
	require.NoError(t, store.Sessions().Transition(ctx, user.ID, session.ID, storage.StatusChange{
		From: models.SessionPlanned, To: models.SessionInProgress, At: startedAt,
	}))

	err := store.Sessions().Transition(ctx, user.ID, session.ID, storage.StatusChange{
		From: models.SessionPlanned, To: models.SessionInProgress, At: startedAt,
	})
	assert.ErrorIs(t, err, storage.ErrStatusMismatch)

	completedAt := base.Add(31 * time.Minute)
	require.NoError(t, store.Sessions().Transition(ctx, user.ID, session.ID, storage.StatusChange{
		From: models.SessionInProgress, To: models.SessionCompleted, At: completedAt,
	}))

	stored, err := store.Sessions().Get(ctx, user.ID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, stored.Status)
	require.NotNil(t, stored.StartedAt)
	require.NotNil(t, stored.CompletedAt)
	assert.True(t, stored.StartedAt.Equal(startedAt))
	assert.True(t, stored.CompletedAt.Equal(completedAt))
	assert.True(t, stored.UpdatedAt.Equal(completedAt))

	err = store.Sessions().Transition(ctx, user.ID, uuid.NewString(), storage.StatusChange{
		From: models.SessionPlanned, To: models.SessionInProgress, At: base,
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testSessionPatch(t *testing.T, store storage.Store) {
	ctx := context.Background()
	user := seedUser(t, store, "patch@example.com")
	session := seedSession(t, store, user.ID, models.SessionPlanned, base)

	duration := 45
	subject := "Chemistry"
	updatedAt := base.Add(time.Hour)
	require.NoError(t, store.Sessions().Update(ctx, user.ID, session.ID, storage.SessionPatch{
		Subject:   &subject,
		Duration:  &duration,
		UpdatedAt: updatedAt,
	}))

	stored, err := store.Sessions().Get(ctx, user.ID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cells", stored.Title)
	assert.Equal(t, "Chemistry", stored.Subject)
	assert.Equal(t, 45, stored.Duration)
	assert.Equal(t, models.SessionPlanned, stored.Status)
	assert.True(t, stored.CreatedAt.Equal(base))
	assert.True(t, stored.UpdatedAt.Equal(updatedAt))
	assert.Nil(t, stored.StartedAt)
}

func testNoteCategories(t *testing.T, store storage.Store) {
	ctx := context.Background()
	user := seedUser(t, store, "notes@example.com")

	for index, category := range []string{models.NoteCategoryStudy, models.NoteCategoryWork, models.NoteCategoryStudy} {
		note := models.Note{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Title:     "note",
			Category:  category,
			CreatedAt: base.Add(time.Duration(index) * time.Minute),
			UpdatedAt: base,
		}
		require.NoError(t, store.Notes().Create(ctx, &note))
	}

	study, err := store.Notes().List(ctx, storage.NoteFilter{UserID: user.ID, Category: models.NoteCategoryStudy})
	require.NoError(t, err)
	assert.Len(t, study, 2)

	all, err := store.Notes().List(ctx, storage.NoteFilter{UserID: user.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[2].CreatedAt))

	content := "mitosis"
	require.NoError(t, store.Notes().Update(ctx, user.ID, all[0].ID, storage.NotePatch{Content: &content, UpdatedAt: base.Add(time.Hour)}))
	stored, err := store.Notes().Get(ctx, user.ID, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "mitosis", stored.Content)

	count, err := store.Notes().Count(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	require.NoError(t, store.Notes().Delete(ctx, user.ID, all[0].ID))
	count, err = store.Notes().Count(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func testBookToggle(t *testing.T, store storage.Store) {
	ctx := context.Background()
	user := seedUser(t, store, "books@example.com")
	book := models.Book{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Title:     "SICP",
		Author:    "Abelson",
		Category:  models.BookCategoryAcademic,
		CreatedAt: base,
		UpdatedAt: base,
	}
	require.NoError(t, store.Books().Create(ctx, &book))

	first, err := store.Books().ToggleComplete(ctx, user.ID, book.ID, base.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, first.IsComplete)
	assert.True(t, first.UpdatedAt.Equal(base.Add(time.Minute)))

	read := true
	count, err := store.Books().Count(ctx, storage.BookFilter{UserID: user.ID, IsComplete: &read})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	second, err := store.Books().ToggleComplete(ctx, user.ID, book.ID, base.Add(2*time.Minute))
	require.NoError(t, err)
	assert.False(t, second.IsComplete)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	_, err = store.Books().ToggleComplete(ctx, uuid.NewString(), book.ID, base)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testTimerLimit(t *testing.T, store storage.Store) {
	ctx := context.Background()
	user := seedUser(t, store, "timers@example.com")

	var last models.FocusTimer
	for index := 0; index < 5; index++ {
		last = models.FocusTimer{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			TimerType: models.TimerPomodoro,
			Duration:  25,
			StartedAt: base.Add(time.Duration(index) * time.Hour),
		}
		require.NoError(t, store.Timers().Create(ctx, &last))
	}

	latest, err := store.Timers().List(ctx, storage.TimerFilter{UserID: user.ID, Limit: 3})
	require.NoError(t, err)
	require.Len(t, latest, 3)
	assert.Equal(t, last.ID, latest[0].ID)

	completedAt := base.Add(5 * time.Hour)
	require.NoError(t, store.Timers().MarkCompleted(ctx, user.ID, last.ID, completedAt))
	stored, err := store.Timers().Get(ctx, user.ID, last.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	require.NotNil(t, stored.CompletedAt)
	assert.True(t, stored.CompletedAt.Equal(completedAt))

	assert.ErrorIs(t, store.Timers().MarkCompleted(ctx, uuid.NewString(), last.ID, completedAt), storage.ErrNotFound)
}

func testDeleteCascade(t *testing.T, store storage.Store) {
	ctx := context.Background()
	doomed := seedUser(t, store, "doomed@example.com")
	kept := seedUser(t, store, "kept@example.com")

	seedSession(t, store, doomed.ID, models.SessionPlanned, base)
	keptSession := seedSession(t, store, kept.ID, models.SessionPlanned, base)
	note := models.Note{ID: uuid.NewString(), UserID: doomed.ID, Title: "n", Category: models.NoteCategoryStudy, CreatedAt: base}
	require.NoError(t, store.Notes().Create(ctx, &note))
	book := models.Book{ID: uuid.NewString(), UserID: doomed.ID, Title: "b", Author: "a", Category: models.BookCategoryFiction, CreatedAt: base}
	require.NoError(t, store.Books().Create(ctx, &book))
	timer := models.FocusTimer{ID: uuid.NewString(), UserID: doomed.ID, TimerType: models.TimerLongBreak, Duration: 15, StartedAt: base}
	require.NoError(t, store.Timers().Create(ctx, &timer))

	require.NoError(t, store.Users().DeleteCascade(ctx, doomed.ID))

	_, err := store.Users().FindByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	sessions, err := store.Sessions().List(ctx, storage.SessionFilter{UserID: doomed.ID})
	require.NoError(t, err)
	assert.Empty(t, sessions)
	notes, err := store.Notes().Count(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Zero(t, notes)
	books, err := store.Books().Count(ctx, storage.BookFilter{UserID: doomed.ID})
	require.NoError(t, err)
	assert.Zero(t, books)
	timers, err := store.Timers().List(ctx, storage.TimerFilter{UserID: doomed.ID})
	require.NoError(t, err)
	assert.Empty(t, timers)

	_, err = store.Sessions().Get(ctx, kept.ID, keptSession.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, store.Users().DeleteCascade(ctx, doomed.ID), storage.ErrNotFound)
}

func testErrorsAreStoreErrors(t *testing.T, store storage.Store) {
	_, err := store.Notes().Get(context.Background(), uuid.NewString(), uuid.NewString())
	require.Error(t, err)

	var storeErr *storage.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "notes.get", storeErr.Op)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testCreateWithMissingOwner(t *testing.T, store storage.Store) {
	ctx := context.Background()
	deleted := seedUser(t, store, "deleted@example.com")
	require.NoError(t, store.Users().DeleteCascade(ctx, deleted.ID))

	for _, owner := range []string{deleted.ID, uuid.NewString()} {
		session := models.StudySession{ID: uuid.NewString(), UserID: owner, Title: "Cells", Subject: "Biology", Duration: 30, Status: models.SessionPlanned, CreatedAt: base, UpdatedAt: base}
		note := models.Note{ID: uuid.NewString(), UserID: owner, Title: "n", Category: models.NoteCategoryStudy, CreatedAt: base, UpdatedAt: base}
		book := models.Book{ID: uuid.NewString(), UserID: owner, Title: "b", Author: "a", Category: models.BookCategoryAcademic, CreatedAt: base, UpdatedAt: base}
		timer := models.FocusTimer{ID: uuid.NewString(), UserID: owner, TimerType: models.TimerPomodoro, Duration: 25, StartedAt: base}

		for op, err := range map[string]error{
			"sessions.create": store.Sessions().Create(ctx, &session),
			"notes.create":    store.Notes().Create(ctx, &note),
			"books.create":    store.Books().Create(ctx, &book),
			"timers.create":   store.Timers().Create(ctx, &timer),
		} {
			assert.ErrorIs(t, err, storage.ErrNotFound, op)
			var storeErr *storage.StoreError
			if assert.True(t, errors.As(err, &storeErr), op) {
				assert.Equal(t, op, storeErr.Op)
			}
		}
	}
}
