package api

import (
	"errors"
	"time"

	"github.com/focusmode/focusmode/internal/services"
	"github.com/focusmode/focusmode/internal/storage"
	"go.uber.org/zap"
)

func NewHandler(store storage.Store, options Options) (*Handler, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if len(options.Secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	handler := &Handler{
		store:        store,
		secret:       options.Secret,
		tokenTTL:     options.TokenTTL,
		location:     options.Location,
		logger:       options.Logger.Named("api"),
		now:          time.Now,
		loginLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(store), nil
}

func (handler *Handler) withDependencies(store storage.Store) *Handler {
	handler.authService = services.NewAuthService(store.Users(), handler.secret, handler.tokenTTL)
	handler.sessionService = services.NewSessionService(store.Sessions())
	handler.noteService = services.NewNoteService(store.Notes())
	handler.bookService = services.NewBookService(store.Books())
	handler.timerService = services.NewTimerLogService(store.Timers())
	handler.statsService = services.NewStatsService(store.Sessions(), store.Users(), store.Notes(), store.Books(), handler.location)
	handler.settingsService = services.NewSettingsService(store.Users())
	return handler
}
