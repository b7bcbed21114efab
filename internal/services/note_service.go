package services

import (
	"context"
	"strings"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"github.com/google/uuid"
)

// NoteCategoryAll lists every category.
const NoteCategoryAll = "all"

type NoteInput struct {
	Title    string
	Content  string
	Category string
}

type NoteUpdate struct {
	Title    *string
	Content  *string
	Category *string
}

type NoteService struct {
	notes storage.NoteRepository
	now   func() time.Time
}

func NewNoteService(notes storage.NoteRepository) *NoteService {
	return &NoteService{notes: notes, now: systemNow}
}

func (service *NoteService) Create(ctx context.Context, userID string, input NoteInput) (models.Note, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Note{}, invalid("title", "Title is required")
	}
	category, err := normalizeNoteCategory(input.Category)
	if err != nil {
		return models.Note{}, err
	}

	now := service.now()
	note := models.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   input.Content,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := service.notes.Create(ctx, &note); err != nil {
		return models.Note{}, storeFailure(err)
	}
	return note, nil
}

func (service *NoteService) Get(ctx context.Context, userID string, id string) (models.Note, error) {
	note, err := service.notes.Get(ctx, userID, id)
	if err != nil {
		return models.Note{}, storeFailure(err)
	}
	return note, nil
}

func (service *NoteService) List(ctx context.Context, userID string, category string) ([]models.Note, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == NoteCategoryAll {
		category = ""
	}
	if category != "" && !models.IsValidNoteCategory(category) {
		return nil, invalid("category", "Unknown note category")
	}
	notes, err := service.notes.List(ctx, storage.NoteFilter{UserID: userID, Category: category})
	if err != nil {
		return nil, storeFailure(err)
	}
	return notes, nil
}

func (service *NoteService) Update(ctx context.Context, userID string, id string, update NoteUpdate) (models.Note, error) {
	patch := storage.NotePatch{Content: update.Content, UpdatedAt: service.now()}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return models.Note{}, invalid("title", "Title is required")
		}
		patch.Title = &title
	}
	if update.Category != nil {
		category, err := normalizeNoteCategory(*update.Category)
		if err != nil {
			return models.Note{}, err
		}
		patch.Category = &category
	}

	if err := service.notes.Update(ctx, userID, id, patch); err != nil {
		return models.Note{}, storeFailure(err)
	}
	return service.Get(ctx, userID, id)
}

func (service *NoteService) Delete(ctx context.Context, userID string, id string) error {
	return storeFailure(service.notes.Delete(ctx, userID, id))
}

func normalizeNoteCategory(raw string) (string, error) {
	category := strings.ToLower(strings.TrimSpace(raw))
	if category == "" {
		return models.NoteCategoryStudy, nil
	}
	if !models.IsValidNoteCategory(category) {
		return "", invalid("category", "Unknown note category")
	}
	return category, nil
}
