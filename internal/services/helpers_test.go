package services

import (
	"context"
	"testing"
	"time"

	"github.com/focusmode/focusmode/internal/memstore"
	"github.com/focusmode/focusmode/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	current time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{current: start}
}

func (clock *testClock) Now() time.Time {
	return clock.current
}

func (clock *testClock) Advance(step time.Duration) {
	clock.current = clock.current.Add(step)
}

func seedTestUser(t *testing.T, store *memstore.Store, email string) models.User {
	t.Helper()
	user := models.User{
		ID:        uuid.NewString(),
		Name:      "Student",
		Email:     email,
		Avatar:    "S",
		Status:    models.UserStatusActive,
		CreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	user.ApplySettings(models.DefaultNotificationSettings())
	require.NoError(t, store.Users().Create(context.Background(), &user))
	return user
}
