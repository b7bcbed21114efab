package db

import (
	"context"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"gorm.io/gorm"
)

type UserRepository struct {
	conn connFunc
}

func (repo *UserRepository) Create(ctx context.Context, user *models.User) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("users.create", err)
	}
	normalizeUserTimes(user)
	return failure("users.create", database.Create(user).Error)
}

func (repo *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return models.User{}, failure("users.find_by_id", err)
	}
	var user models.User
	if err := database.Where("id = ?", id).First(&user).Error; err != nil {
		return models.User{}, failure("users.find_by_id", err)
	}
	return user, nil
}

func (repo *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return models.User{}, failure("users.find_by_email", err)
	}
	var user models.User
	if err := database.
		Where("email = ? AND status = ?", email, models.UserStatusActive).
		First(&user).Error; err != nil {
		return models.User{}, failure("users.find_by_email", err)
	}
	return user, nil
}

func (repo *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return false, failure("users.exists_by_email", err)
	}
	var matched int64
	if err := database.Model(&models.User{}).
		Where("email = ?", email).
		Count(&matched).Error; err != nil {
		return false, failure("users.exists_by_email", err)
	}
	return matched > 0, nil
}

func (repo *UserRepository) List(ctx context.Context, filter storage.UserFilter) ([]models.User, error) {
	database, err := repo.conn(ctx)
	if err != nil {
		return nil, failure("users.list", err)
	}

	query := database.Model(&models.User{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DailyReminders != nil {
		query = query.Where("daily_reminders = ?", *filter.DailyReminders)
	}
	if filter.SessionReminders != nil {
		query = query.Where("session_reminders = ?", *filter.SessionReminders)
	}

	users := make([]models.User, 0)
	if err := query.Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
		return nil, failure("users.list", err)
	}
	return users, nil
}

func (repo *UserRepository) Update(ctx context.Context, id string, patch storage.UserPatch) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("users.update", err)
	}

	updates := map[string]any{"updated_at": patch.UpdatedAt.UTC()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
		updates["avatar"] = models.AvatarFromName(*patch.Name)
	}
	if patch.PasswordHash != nil {
		updates["password_hash"] = *patch.PasswordHash
	}
	if patch.LastLoginAt != nil {
		updates["last_login_at"] = patch.LastLoginAt.UTC()
	}
	if patch.Settings != nil {
		updates["push_enabled"] = patch.Settings.PushEnabled
		updates["daily_reminders"] = patch.Settings.DailyReminders
		updates["session_reminders"] = patch.Settings.SessionReminders
		updates["achievement_alerts"] = patch.Settings.AchievementAlerts
	}

	result := database.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return failure("users.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return failure("users.update", storage.ErrNotFound)
	}
	return nil
}

func (repo *UserRepository) DeleteCascade(ctx context.Context, id string) error {
	database, err := repo.conn(ctx)
	if err != nil {
		return failure("users.delete_cascade", err)
	}

	err = database.Transaction(func(tx *gorm.DB) error {
		for _, owned := range []any{&models.StudySession{}, &models.Note{}, &models.Book{}, &models.FocusTimer{}} {
			if err := tx.Where("user_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}
		result := tx.Where("id = ?", id).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
	return failure("users.delete_cascade", err)
}

func normalizeUserTimes(user *models.User) {
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	if user.LastLoginAt != nil {
		value := user.LastLoginAt.UTC()
		user.LastLoginAt = &value
	}
}
