package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTokenTTL = 7 * 24 * time.Hour

type AuthUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, id string, patch storage.UserPatch) error
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Identity is what a valid token proves about its bearer.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type authClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users    AuthUserRepository
	secret   []byte
	tokenTTL time.Duration
	hashCost int
	now      func() time.Time
}

func NewAuthService(users AuthUserRepository, secret []byte, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
		hashCost: bcrypt.DefaultCost,
		now:      systemNow,
	}
}

func (service *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, string, error) {
	name := strings.TrimSpace(input.Name)
	rawEmail := strings.TrimSpace(input.Email)
	if name == "" || rawEmail == "" || input.Password == "" {
		return models.User{}, "", invalid("", "All fields are required")
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		return models.User{}, "", err
	}
	email := NormalizeAuthEmail(rawEmail)
	if email == "" {
		return models.User{}, "", invalid("email", "Invalid email address")
	}

	exists, err := service.users.ExistsByEmail(ctx, email)
	if err != nil {
		return models.User{}, "", storeFailure(err)
	}
	if exists {
		return models.User{}, "", fmt.Errorf("%w: user %s", ErrConflict, email)
	}

	hash, err := service.HashPassword(input.Password)
	if err != nil {
		return models.User{}, "", err
	}

	now := service.now()
	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Avatar:       models.AvatarFromName(name),
		Status:       models.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.ApplySettings(models.DefaultNotificationSettings())
	if err := service.users.Create(ctx, &user); err != nil {
		return models.User{}, "", storeFailure(err)
	}

	token, err := service.IssueToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login fails with the same ErrInvalidCredentials for an unknown email and a
// wrong password.
func (service *AuthService) Login(ctx context.Context, email string, password string) (models.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, "", invalid("", "Email and password are required")
	}

	user, err := service.users.FindByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, "", storeFailure(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	now := service.now()
	if err := service.users.Update(ctx, user.ID, storage.UserPatch{LastLoginAt: &now, UpdatedAt: now}); err != nil {
		return models.User{}, "", storeFailure(err)
	}
	user.LastLoginAt = &now
	user.UpdatedAt = now

	token, err := service.IssueToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (service *AuthService) IssueToken(user models.User) (string, error) {
	now := service.now()
	claims := authClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Avatar: user.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate verifies signature, algorithm and expiry. It does not touch
// the store.
func (service *AuthService) Authenticate(rawToken string) (Identity, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return Identity{}, ErrUnauthenticated
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrForbidden, err)
	}
	if !token.Valid || claims.UserID == "" {
		return Identity{}, ErrForbidden
	}

	return Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Avatar: claims.Avatar,
	}, nil
}

func (service *AuthService) FindByID(ctx context.Context, userID string) (models.User, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, storeFailure(err)
	}
	return user, nil
}

// ResetPassword replaces the password of the account registered under email.
func (service *AuthService) ResetPassword(ctx context.Context, email string, password string) error {
	if err := ValidatePasswordStrength(password); err != nil {
		return err
	}
	user, err := service.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return storeFailure(err)
	}
	hash, err := service.HashPassword(password)
	if err != nil {
		return err
	}
	return storeFailure(service.users.Update(ctx, user.ID, storage.UserPatch{PasswordHash: &hash, UpdatedAt: service.now()}))
}

func (service *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
