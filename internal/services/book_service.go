package services

import (
	"context"
	"strings"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"github.com/google/uuid"
)

type BookInput struct {
	Title       string
	Author      string
	Description string
	Category    string
}

type BookUpdate struct {
	Title       *string
	Author      *string
	Description *string
	Category    *string
}

// BookService manages the reading list. Completion changes only through
// Toggle.
type BookService struct {
	books storage.BookRepository
	now   func() time.Time
}

func NewBookService(books storage.BookRepository) *BookService {
	return &BookService{books: books, now: systemNow}
}

func (service *BookService) Create(ctx context.Context, userID string, input BookInput) (models.Book, error) {
	title := strings.TrimSpace(input.Title)
	author := strings.TrimSpace(input.Author)
	if title == "" {
		return models.Book{}, invalid("title", "Title is required")
	}
	if author == "" {
		return models.Book{}, invalid("author", "Author is required")
	}
	category, err := normalizeBookCategory(input.Category)
	if err != nil {
		return models.Book{}, err
	}

	now := service.now()
	book := models.Book{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Author:      author,
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := service.books.Create(ctx, &book); err != nil {
		return models.Book{}, storeFailure(err)
	}
	return book, nil
}

func (service *BookService) Get(ctx context.Context, userID string, id string) (models.Book, error) {
	book, err := service.books.Get(ctx, userID, id)
	if err != nil {
		return models.Book{}, storeFailure(err)
	}
	return book, nil
}

func (service *BookService) List(ctx context.Context, userID string) ([]models.Book, error) {
	books, err := service.books.List(ctx, storage.BookFilter{UserID: userID})
	if err != nil {
		return nil, storeFailure(err)
	}
	return books, nil
}

func (service *BookService) Update(ctx context.Context, userID string, id string, update BookUpdate) (models.Book, error) {
	patch := storage.BookPatch{UpdatedAt: service.now()}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return models.Book{}, invalid("title", "Title is required")
		}
		patch.Title = &title
	}
	if update.Author != nil {
		author := strings.TrimSpace(*update.Author)
		if author == "" {
			return models.Book{}, invalid("author", "Author is required")
		}
		patch.Author = &author
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		patch.Description = &description
	}
	if update.Category != nil {
		category, err := normalizeBookCategory(*update.Category)
		if err != nil {
			return models.Book{}, err
		}
		patch.Category = &category
	}

	if err := service.books.Update(ctx, userID, id, patch); err != nil {
		return models.Book{}, storeFailure(err)
	}
	return service.Get(ctx, userID, id)
}

func (service *BookService) Toggle(ctx context.Context, userID string, id string) (models.Book, error) {
	book, err := service.books.ToggleComplete(ctx, userID, id, service.now())
	if err != nil {
		return models.Book{}, storeFailure(err)
	}
	return book, nil
}

func (service *BookService) Delete(ctx context.Context, userID string, id string) error {
	return storeFailure(service.books.Delete(ctx, userID, id))
}

func normalizeBookCategory(raw string) (string, error) {
	category := strings.ToLower(strings.TrimSpace(raw))
	if category == "" {
		return models.BookCategoryAcademic, nil
	}
	if !models.IsValidBookCategory(category) {
		return "", invalid("category", "Unknown book category")
	}
	return category, nil
}
