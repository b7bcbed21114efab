package db

import (
	"context"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
)

type NoteRepository struct {
	conn connFunc
}

func (repo *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("notes.create", err)
	}
	note.CreatedAt = note.CreatedAt.UTC()
	note.UpdatedAt = note.UpdatedAt.UTC()
	return failure("notes.create", database.Create(note).Error)
}

func (repo *NoteRepository) Get(ctx context.Context, userID string, id string) (models.Note, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return models.Note{}, failure("notes.get", err)
	}
	var note models.Note
	if err := database.Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		return models.Note{}, failure("notes.get", err)
	}
	return note, nil
}

func (repo *NoteRepository) List(ctx context.Context, filter storage.NoteFilter) ([]models.Note, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return nil, failure("notes.list", err)
	}

	query := database.Where("user_id = ?", filter.UserID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	notes := make([]models.Note, 0)
	if err := query.Order("created_at DESC, id DESC").Find(&notes).Error; err != nil {
		return nil, failure("notes.list", err)
	}
	return notes, nil
}

func (repo *NoteRepository) Count(ctx context.Context, userID string) (int64, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return 0, failure("notes.count", err)
	}
	var count int64
	if err := database.Model(&models.Note{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, failure("notes.count", err)
	}
	return count, nil
}

func (repo *NoteRepository) Update(ctx context.Context, userID string, id string, patch storage.NotePatch) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("notes.update", err)
	}

	updates := map[string]any{"updated_at": patch.UpdatedAt.UTC()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}

	result := database.Model(&models.Note{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return failure("notes.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return failure("notes.update", storage.ErrNotFound)
	}
	return nil
}

func (repo *NoteRepository) Delete(ctx context.Context, userID string, id string) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("notes.delete", err)
	}
	result := database.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Note{})
	if result.Error != nil {
		return failure("notes.delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return failure("notes.delete", storage.ErrNotFound)
	}
	return nil
}
