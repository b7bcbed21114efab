package services

import (
	"context"
	"testing"
	"time"

	"github.com/focusmode/focusmode/internal/memstore"
	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidateDeleteAccountPasswordRejectsMissingPassword(t *testing.T) {
	service := NewSettingsService(nil)

	err := service.ValidateDeleteAccountPassword("ignored", "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateDeleteAccountPasswordRejectsInvalidPassword(t *testing.T) {
	service := NewSettingsService(nil)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("StrongPass1"), bcrypt.MinCost)
	require.NoError(t, err)

	err = service.ValidateDeleteAccountPassword(string(passwordHash), "WrongPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, service.ValidateDeleteAccountPassword(string(passwordHash), "StrongPass1"))
}

func TestSettingsUpdateReplacesAllFlags(t *testing.T) {
	store := memstore.New()
	user := seedTestUser(t, store, "flags@example.com")
	service := NewSettingsService(store.Users())
	ctx := context.Background()

	current, err := service.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultNotificationSettings(), current)

	wanted := models.NotificationSettings{PushEnabled: true, DailyReminders: false, SessionReminders: true, AchievementAlerts: false}
	_, err = service.Update(ctx, user.ID, wanted)
	require.NoError(t, err)

	stored, err := service.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, wanted, stored)

	_, err = service.Update(ctx, "missing", wanted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAccountCascadesAfterPasswordConfirmation(t *testing.T) {
	store := memstore.New()
	clock := newTestClock(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))
	auth := newTestAuthService(store, clock)
	ctx := context.Background()

	user, _, err := auth.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = NewSessionService(store.Sessions()).Create(ctx, user.ID, SessionInput{Title: "Cells", Subject: "Biology", Duration: 30})
	require.NoError(t, err)
	_, err = NewNoteService(store.Notes()).Create(ctx, user.ID, NoteInput{Title: "note"})
	require.NoError(t, err)
	_, err = NewBookService(store.Books()).Create(ctx, user.ID, BookInput{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)
	_, err = NewTimerLogService(store.Timers()).Record(ctx, user.ID, TimerInput{TimerType: models.TimerPomodoro, Duration: 25})
	require.NoError(t, err)

	service := NewSettingsService(store.Users())
	require.ErrorIs(t, service.DeleteAccount(ctx, user.ID, "wrong"), ErrInvalidCredentials)
	_, err = store.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, service.DeleteAccount(ctx, user.ID, "secret1"))

	_, err = store.Users().FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	sessions, err := store.Sessions().Count(ctx, storage.SessionFilter{UserID: user.ID})
	require.NoError(t, err)
	assert.Zero(t, sessions)
	notes, err := store.Notes().Count(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, notes)
	books, err := store.Books().Count(ctx, storage.BookFilter{UserID: user.ID})
	require.NoError(t, err)
	assert.Zero(t, books)
	timers, err := store.Timers().List(ctx, storage.TimerFilter{UserID: user.ID})
	require.NoError(t, err)
	assert.Empty(t, timers)

	_, _, err = auth.Login(ctx, "ada@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
