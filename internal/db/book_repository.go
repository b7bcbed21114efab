package db

import (
	"context"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"gorm.io/gorm"
)

type BookRepository struct {
	conn connFunc
}

func (repo *BookRepository) Create(ctx context.Context, book *models.Book) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("books.create", err)
	}
	book.CreatedAt = book.CreatedAt.UTC()
	book.UpdatedAt = book.UpdatedAt.UTC()
	return failure("books.create", database.Create(book).Error)
}

func (repo *BookRepository) Get(ctx context.Context, userID string, id string) (models.Book, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return models.Book{}, failure("books.get", err)
	}
	var book models.Book
	if err := database.Where("id = ? AND user_id = ?", id, userID).First(&book).Error; err != nil {
		return models.Book{}, failure("books.get", err)
	}
	return book, nil
}

func (repo *BookRepository) List(ctx context.Context, filter storage.BookFilter) ([]models.Book, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return nil, failure("books.list", err)
	}
	books := make([]models.Book, 0)
	if err := bookQuery(database, filter).Order("created_at DESC, id DESC").Find(&books).Error; err != nil {
		return nil, failure("books.list", err)
	}
	return books, nil
}

func (repo *BookRepository) Count(ctx context.Context, filter storage.BookFilter) (int64, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return 0, failure("books.count", err)
	}
	var count int64
	if err := bookQuery(database, filter).Count(&count).Error; err != nil {
		return 0, failure("books.count", err)
	}
	return count, nil
}

func (repo *BookRepository) Update(ctx context.Context, userID string, id string, patch storage.BookPatch) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("books.update", err)
	}

	updates := map[string]any{"updated_at": patch.UpdatedAt.UTC()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Author != nil {
		updates["author"] = *patch.Author
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}

	result := database.Model(&models.Book{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return failure("books.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return failure("books.update", storage.ErrNotFound)
	}
	return nil
}

func (repo *BookRepository) ToggleComplete(ctx context.Context, userID string, id string, at time.Time) (models.Book, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return models.Book{}, failure("books.toggle_complete", err)
	}

	var book models.Book
	err = database.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Book{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]any{
				"is_complete": gorm.Expr("NOT is_complete"),
				"updated_at":  at.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return storage.ErrNotFound
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).First(&book).Error
	})
	if err != nil {
		return models.Book{}, failure("books.toggle_complete", err)
	}
	return book, nil
}

func (repo *BookRepository) Delete(ctx context.Context, userID string, id string) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("books.delete", err)
	}
	result := database.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Book{})
	if result.Error != nil {
		return failure("books.delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return failure("books.delete", storage.ErrNotFound)
	}
	return nil
}

func bookQuery(database *gorm.DB, filter storage.BookFilter) *gorm.DB {
	query := database.Model(&models.Book{}).Where("user_id = ?", filter.UserID)
	if filter.IsComplete != nil {
		query = query.Where("is_complete = ?", *filter.IsComplete)
	}
	return query
}
