// Package storage declares the entity store contract shared by the durable
// SQLite backend (internal/db) and the in-memory fallback (internal/memstore).
package storage

import (
	"context"
	"time"

	"github.com/focusmode/focusmode/internal/models"
)

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store bundles the per-entity repositories of one backend. A backend is
// chosen once at startup; callers never branch on the concrete type.
type Store interface {
	Users() UserRepository
	Sessions() SessionRepository
	Notes() NoteRepository
	Books() BookRepository
	Timers() TimerRepository
	Ping(ctx context.Context) error
	Close() error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
	Update(ctx context.Context, id string, patch UserPatch) error
	// DeleteCascade removes the user together with every record it owns.
	DeleteCascade(ctx context.Context, id string) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.StudySession) error
	Get(ctx context.Context, userID string, id string) (models.StudySession, error)
	List(ctx context.Context, filter SessionFilter) ([]models.StudySession, error)
	Count(ctx context.Context, filter SessionFilter) (int64, error)
	Update(ctx context.Context, userID string, id string, patch SessionPatch) error
	// Transition moves a session from one status to another in a single
	// compare-and-set. It fails with ErrStatusMismatch when the stored status
	// is not from.
	Transition(ctx context.Context, userID string, id string, change StatusChange) error
	Delete(ctx context.Context, userID string, id string) error
}

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	Get(ctx context.Context, userID string, id string) (models.Note, error)
	List(ctx context.Context, filter NoteFilter) ([]models.Note, error)
	Count(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, userID string, id string, patch NotePatch) error
	Delete(ctx context.Context, userID string, id string) error
}

type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	Get(ctx context.Context, userID string, id string) (models.Book, error)
	List(ctx context.Context, filter BookFilter) ([]models.Book, error)
	Count(ctx context.Context, filter BookFilter) (int64, error)
	Update(ctx context.Context, userID string, id string, patch BookPatch) error
	// ToggleComplete flips the completion flag and refreshes the update
	// timestamp in one statement, returning the stored result.
	ToggleComplete(ctx context.Context, userID string, id string, at time.Time) (models.Book, error)
	Delete(ctx context.Context, userID string, id string) error
}

type TimerRepository interface {
	Create(ctx context.Context, timer *models.FocusTimer) error
	Get(ctx context.Context, userID string, id string) (models.FocusTimer, error)
	List(ctx context.Context, filter TimerFilter) ([]models.FocusTimer, error)
	MarkCompleted(ctx context.Context, userID string, id string, at time.Time) error
}

type UserFilter struct {
	Status           string
	DailyReminders   *bool
	SessionReminders *bool
}

type UserPatch struct {
	Name         *string
	PasswordHash *string
	LastLoginAt  *time.Time
	Settings     *models.NotificationSettings
	UpdatedAt    time.Time
}

type SessionFilter struct {
	UserID string
	Status string
	// CreatedFrom is inclusive, CreatedTo exclusive. Zero values are open.
	CreatedFrom time.Time
	CreatedTo   time.Time
}

type SessionPatch struct {
	Title       *string
	Description *string
	Subject     *string
	Duration    *int
	UpdatedAt   time.Time
}

type StatusChange struct {
	From string
	To   string
	At   time.Time
}

type NoteFilter struct {
	UserID string
	// Category narrows the listing; empty means every category.
	Category string
}

type NotePatch struct {
	Title     *string
	Content   *string
	Category  *string
	UpdatedAt time.Time
}

type BookFilter struct {
	UserID     string
	IsComplete *bool
}

type BookPatch struct {
	Title       *string
	Author      *string
	Description *string
	Category    *string
	UpdatedAt   time.Time
}

type TimerFilter struct {
	UserID string
	Limit  int
}
