package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
)

type noteRepository struct{ store *Store }

func (r noteRepository) Create(ctx context.Context, note *models.Note) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("notes.create", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.notes[note.ID]; exists {
		return storage.Wrap("notes.create", storage.ErrDuplicate)
	}
	if _, exists := r.store.users[note.UserID]; !exists {
		return notFound("notes.create")
	}
	r.store.notes[note.ID] = *note
	return nil
}

func (r noteRepository) Get(ctx context.Context, userID string, id string) (models.Note, error) {
	if err := ctx.Err(); err != nil {
		return models.Note{}, storage.Wrap("notes.get", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	note, ok := r.store.notes[id]
	if !ok || note.UserID != userID {
		return models.Note{}, notFound("notes.get")
	}
	return note, nil
}

func (r noteRepository) List(ctx context.Context, filter storage.NoteFilter) ([]models.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.Wrap("notes.list", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	notes := make([]models.Note, 0)
	for _, note := range r.store.notes {
		if note.UserID != filter.UserID {
			continue
		}
		if filter.Category != "" && note.Category != filter.Category {
			continue
		}
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool {
		return newestFirst(notes[i].CreatedAt, notes[i].ID, notes[j].CreatedAt, notes[j].ID)
	})
	return notes, nil
}

func (r noteRepository) Count(ctx context.Context, userID string) (int64, error) {
	notes, err := r.List(ctx, storage.NoteFilter{UserID: userID})
	if err != nil {
		return 0, storage.Wrap("notes.count", err)
	}
	return int64(len(notes)), nil
}

func (r noteRepository) Update(ctx context.Context, userID string, id string, patch storage.NotePatch) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("notes.update", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	note, ok := r.store.notes[id]
	if !ok || note.UserID != userID {
		return notFound("notes.update")
	}
	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Category != nil {
		note.Category = *patch.Category
	}
	note.UpdatedAt = patch.UpdatedAt
	r.store.notes[id] = note
	return nil
}

func (r noteRepository) Delete(ctx context.Context, userID string, id string) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("notes.delete", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	note, ok := r.store.notes[id]
	if !ok || note.UserID != userID {
		return notFound("notes.delete")
	}
	delete(r.store.notes, id)
	return nil
}

type bookRepository struct{ store *Store }

func (r bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("books.create", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.books[book.ID]; exists {
		return storage.Wrap("books.create", storage.ErrDuplicate)
	}
	if _, exists := r.store.users[book.UserID]; !exists {
		return notFound("books.create")
	}
	r.store.books[book.ID] = *book
	return nil
}

func (r bookRepository) Get(ctx context.Context, userID string, id string) (models.Book, error) {
	if err := ctx.Err(); err != nil {
		return models.Book{}, storage.Wrap("books.get", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	book, ok := r.store.books[id]
	if !ok || book.UserID != userID {
		return models.Book{}, notFound("books.get")
	}
	return book, nil
}

func (r bookRepository) List(ctx context.Context, filter storage.BookFilter) ([]models.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.Wrap("books.list", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	books := make([]models.Book, 0)
	for _, book := range r.store.books {
		if book.UserID != filter.UserID {
			continue
		}
		if filter.IsComplete != nil && book.IsComplete != *filter.IsComplete {
			continue
		}
		books = append(books, book)
	}
	sort.Slice(books, func(i, j int) bool {
		return newestFirst(books[i].CreatedAt, books[i].ID, books[j].CreatedAt, books[j].ID)
	})
	return books, nil
}

func (r bookRepository) Count(ctx context.Context, filter storage.BookFilter) (int64, error) {
	books, err := r.List(ctx, filter)
	if err != nil {
		return 0, storage.Wrap("books.count", err)
	}
	return int64(len(books)), nil
}

func (r bookRepository) Update(ctx context.Context, userID string, id string, patch storage.BookPatch) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("books.update", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	book, ok := r.store.books[id]
	if !ok || book.UserID != userID {
		return notFound("books.update")
	}
	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.Author != nil {
		book.Author = *patch.Author
	}
	if patch.Description != nil {
		book.Description = *patch.Description
	}
	if patch.Category != nil {
		book.Category = *patch.Category
	}
	book.UpdatedAt = patch.UpdatedAt
	r.store.books[id] = book
	return nil
}

func (r bookRepository) ToggleComplete(ctx context.Context, userID string, id string, at time.Time) (models.Book, error) {
	if err := ctx.Err(); err != nil {
		return models.Book{}, storage.Wrap("books.toggle_complete", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	book, ok := r.store.books[id]
	if !ok || book.UserID != userID {
		return models.Book{}, notFound("books.toggle_complete")
	}
	book.IsComplete = !book.IsComplete
	book.UpdatedAt = at
	r.store.books[id] = book
	return book, nil
}

func (r bookRepository) Delete(ctx context.Context, userID string, id string) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("books.delete", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	book, ok := r.store.books[id]
	if !ok || book.UserID != userID {
		return notFound("books.delete")
	}
	delete(r.store.books, id)
	return nil
}

type timerRepository struct{ store *Store }

func (r timerRepository) Create(ctx context.Context, timer *models.FocusTimer) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("timers.create", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.timers[timer.ID]; exists {
		return storage.Wrap("timers.create", storage.ErrDuplicate)
	}
	if _, exists := r.store.users[timer.UserID]; !exists {
		return notFound("timers.create")
	}
	stored := *timer
	stored.CompletedAt = cloneTime(timer.CompletedAt)
	r.store.timers[timer.ID] = stored
	return nil
}

func (r timerRepository) Get(ctx context.Context, userID string, id string) (models.FocusTimer, error) {
	if err := ctx.Err(); err != nil {
		return models.FocusTimer{}, storage.Wrap("timers.get", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	timer, ok := r.store.timers[id]
	if !ok || timer.UserID != userID {
		return models.FocusTimer{}, notFound("timers.get")
	}
	timer.CompletedAt = cloneTime(timer.CompletedAt)
	return timer, nil
}

func (r timerRepository) List(ctx context.Context, filter storage.TimerFilter) ([]models.FocusTimer, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.Wrap("timers.list", err)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	timers := make([]models.FocusTimer, 0)
	for _, timer := range r.store.timers {
		if timer.UserID != filter.UserID {
			continue
		}
		timer.CompletedAt = cloneTime(timer.CompletedAt)
		timers = append(timers, timer)
	}
	sort.Slice(timers, func(i, j int) bool {
		return newestFirst(timers[i].StartedAt, timers[i].ID, timers[j].StartedAt, timers[j].ID)
	})
	if filter.Limit > 0 && len(timers) > filter.Limit {
		timers = timers[:filter.Limit]
	}
	return timers, nil
}

func (r timerRepository) MarkCompleted(ctx context.Context, userID string, id string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return storage.Wrap("timers.mark_completed", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	timer, ok := r.store.timers[id]
	if !ok || timer.UserID != userID {
		return notFound("timers.mark_completed")
	}
	timer.Completed = true
	timer.CompletedAt = &at
	r.store.timers[id] = timer
	return nil
}
