package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"github.com/focusmode/focusmode/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return New()
	})
}

func TestStoreReturnsCopies(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	user := models.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Status: models.UserStatusActive, CreatedAt: now}
	require.NoError(t, store.Users().Create(ctx, &user))

	session := models.StudySession{ID: "s1", UserID: "u1", Title: "Cells", Subject: "Biology", Duration: 30, Status: models.SessionPlanned, CreatedAt: now}
	require.NoError(t, store.Sessions().Create(ctx, &session))
	require.NoError(t, store.Sessions().Transition(ctx, "u1", "s1", storage.StatusChange{
		From: models.SessionPlanned, To: models.SessionInProgress, At: now,
	}))

	loaded, err := store.Sessions().Get(ctx, "u1", "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded.StartedAt)
	*loaded.StartedAt = now.Add(time.Hour)
	loaded.Title = "mutated"

	again, err := store.Sessions().Get(ctx, "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Cells", again.Title)
	assert.True(t, again.StartedAt.Equal(now))
}

func TestStoreRejectsOrphans(t *testing.T) {
	store := New()
	note := models.Note{ID: "n1", UserID: "ghost", Title: "orphan"}

	err := store.Notes().Create(context.Background(), &note)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Users().List(ctx, storage.UserFilter{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Ping(ctx), context.Canceled)
}
