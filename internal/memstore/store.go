// Package memstore is the ephemeral storage.Store backend. Contents live for
// the process lifetime only.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User
	sessions map[string]models.StudySession
	notes    map[string]models.Note
	books    map[string]models.Book
	timers   map[string]models.FocusTimer
}

func New() *Store {
	return &Store{
		users:    make(map[string]models.User),
		sessions: make(map[string]models.StudySession),
		notes:    make(map[string]models.Note),
		books:    make(map[string]models.Book),
		timers:   make(map[string]models.FocusTimer),
	}
}

func (s *Store) Users() storage.UserRepository       { return userRepository{s} }
func (s *Store) Sessions() storage.SessionRepository { return sessionRepository{s} }
func (s *Store) Notes() storage.NoteRepository       { return noteRepository{s} }
func (s *Store) Books() storage.BookRepository       { return bookRepository{s} }
func (s *Store) Timers() storage.TimerRepository     { return timerRepository{s} }

func (s *Store) Ping(ctx context.Context) error {
	return storage.Wrap("store.ping", ctx.Err())
}

func (s *Store) Close() error {
	return nil
}

func notFound(op string) error {
	return storage.Wrap(op, storage.ErrNotFound)
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

// newestFirst orders by created desc with id desc as the tie break, matching
// the relational backend.
func newestFirst(leftAt time.Time, leftID string, rightAt time.Time, rightID string) bool {
	if !leftAt.Equal(rightAt) {
		return leftAt.After(rightAt)
	}
	return leftID > rightID
}

type userRepository struct{ store *Store }

func (r userRepository) Create(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("users.create", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.users[user.ID]; exists {
		return storage.Wrap("users.create", storage.ErrDuplicate)
	}
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return storage.Wrap("users.create", storage.ErrDuplicate)
		}
	}
	stored := *user
	stored.LastLoginAt = cloneTime(user.LastLoginAt)
	r.store.users[user.ID] = stored
	return nil
}

func (r userRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, storage.Wrap("users.find_by_id", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return models.User{}, notFound("users.find_by_id")
	}
	user.LastLoginAt = cloneTime(user.LastLoginAt)
	return user, nil
}

func (r userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, storage.Wrap("users.find_by_email", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Email == email && user.Status == models.UserStatusActive {
			user.LastLoginAt = cloneTime(user.LastLoginAt)
			return user, nil
		}
	}
	return models.User{}, notFound("users.find_by_email")
}

func (r userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, storage.Wrap("users.exists_by_email", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepository) List(ctx context.Context, filter storage.UserFilter) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.Wrap("users.list", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]models.User, 0)
	for _, user := range r.store.users {
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		if filter.DailyReminders != nil && user.DailyReminders != *filter.DailyReminders {
			continue
		}
		if filter.SessionReminders != nil && user.SessionReminders != *filter.SessionReminders {
			continue
		}
		user.LastLoginAt = cloneTime(user.LastLoginAt)
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (r userRepository) Update(ctx context.Context, id string, patch storage.UserPatch) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("users.update", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return notFound("users.update")
	}
	if patch.Name != nil {
		user.Name = *patch.Name
		user.Avatar = models.AvatarFromName(*patch.Name)
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	if patch.LastLoginAt != nil {
		user.LastLoginAt = cloneTime(patch.LastLoginAt)
	}
	if patch.Settings != nil {
		user.ApplySettings(*patch.Settings)
	}
	user.UpdatedAt = patch.UpdatedAt
	r.store.users[id] = user
	return nil
}

func (r userRepository) DeleteCascade(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("users.delete_cascade", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[id]; !ok {
		return notFound("users.delete_cascade")
	}
	for key, session := range r.store.sessions {
		if session.UserID == id {
			delete(r.store.sessions, key)
		}
	}
	for key, note := range r.store.notes {
		if note.UserID == id {
			delete(r.store.notes, key)
		}
	}
	for key, book := range r.store.books {
		if book.UserID == id {
			delete(r.store.books, key)
		}
	}
	for key, timer := range r.store.timers {
		if timer.UserID == id {
			delete(r.store.timers, key)
		}
	}
	delete(r.store.users, id)
	return nil
}
