package services

import (
	"context"
	"strings"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type SettingsUserRepository interface {
	FindByID(ctx context.Context, id string) (models.User, error)
	Update(ctx context.Context, id string, patch storage.UserPatch) error
	DeleteCascade(ctx context.Context, id string) error
}

type SettingsService struct {
	users SettingsUserRepository
	now   func() time.Time
}

func NewSettingsService(users SettingsUserRepository) *SettingsService {
	return &SettingsService{users: users, now: systemNow}
}

func (service *SettingsService) Get(ctx context.Context, userID string) (models.NotificationSettings, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return models.NotificationSettings{}, storeFailure(err)
	}
	return user.Settings(), nil
}

func (service *SettingsService) Update(ctx context.Context, userID string, settings models.NotificationSettings) (models.NotificationSettings, error) {
	if err := service.users.Update(ctx, userID, storage.UserPatch{Settings: &settings, UpdatedAt: service.now()}); err != nil {
		return models.NotificationSettings{}, storeFailure(err)
	}
	return settings, nil
}

func (service *SettingsService) ValidateDeleteAccountPassword(passwordHash string, rawPassword string) error {
	if strings.TrimSpace(rawPassword) == "" {
		return invalid("password", "Password is required")
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(rawPassword)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// DeleteAccount removes the user and everything the user owns once the
// password is confirmed.
func (service *SettingsService) DeleteAccount(ctx context.Context, userID string, password string) error {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return storeFailure(err)
	}
	if err := service.ValidateDeleteAccountPassword(user.PasswordHash, password); err != nil {
		return err
	}
	return storeFailure(service.users.DeleteCascade(ctx, userID))
}
