package db

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/focusmode/focusmode/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var errStoreClosed = errors.New("store closed")

// Store is the SQLite-backed storage.Store. The connection is opened on the
// first query; concurrent first queries share one attempt and a failed
// attempt is retried by the next caller.
type Store struct {
	path   string
	logger *zap.Logger

	connect  singleflight.Group
	mu       sync.RWMutex
	database *gorm.DB
	closed   bool

	users    *UserRepository
	sessions *SessionRepository
	notes    *NoteRepository
	books    *BookRepository
	timers   *TimerRepository
}

func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := &Store{path: path, logger: logger.Named("sqlite")}
	store.users = &UserRepository{conn: store.conn}
	store.sessions = &SessionRepository{conn: store.conn}
	store.notes = &NoteRepository{conn: store.conn}
	store.books = &BookRepository{conn: store.conn}
	store.timers = &TimerRepository{conn: store.conn}
	return store
}

func (store *Store) Users() storage.UserRepository       { return store.users }
func (store *Store) Sessions() storage.SessionRepository { return store.sessions }
func (store *Store) Notes() storage.NoteRepository       { return store.notes }
func (store *Store) Books() storage.BookRepository       { return store.books }
func (store *Store) Timers() storage.TimerRepository     { return store.timers }

// DB exposes the underlying handle, connecting if needed.
func (store *Store) DB(ctx context.Context) (*gorm.DB, error) {
	return store.conn(ctx)
}

func (store *Store) Ping(ctx context.Context) error {
	database, err := store.conn(ctx)
	if err != nil {
		return storage.Wrap("store.ping", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return storage.Wrap("store.ping", err)
	}
	return storage.Wrap("store.ping", sqlDB.PingContext(ctx))
}

func (store *Store) Close() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.closed = true
	if store.database == nil {
		return nil
	}
	sqlDB, err := store.database.DB()
	store.database = nil
	if err != nil {
		return storage.Wrap("store.close", err)
	}
	return storage.Wrap("store.close", sqlDB.Close())
}

func (store *Store) conn(ctx context.Context) (*gorm.DB, error) {
	database, err := store.current()
	if err != nil {
		return nil, err
	}
	if database != nil {
		return database.WithContext(ctx), nil
	}

	result, err, _ := store.connect.Do("connect", func() (any, error) {
		if database, err := store.current(); database != nil || err != nil {
			return database, err
		}

		store.logger.Info("opening database", zap.String("path", store.path))
		opened, err := OpenSQLite(context.WithoutCancel(ctx), store.path, store.logger)
		if err != nil {
			return nil, err
		}

		store.mu.Lock()
		defer store.mu.Unlock()
		if store.closed {
			if sqlDB, dbErr := opened.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, errStoreClosed
		}
		store.database = opened
		return opened, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*gorm.DB).WithContext(ctx), nil
}

func (store *Store) current() (*gorm.DB, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	if store.closed {
		return nil, errStoreClosed
	}
	return store.database, nil
}

type connFunc func(ctx context.Context) (*gorm.DB, error)

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return storage.ErrDuplicate
	// A missing owner row is reported like any other missing record.
	case errors.Is(err, gorm.ErrForeignKeyViolated), strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
		return storage.ErrNotFound
	default:
		return err
	}
}

func failure(op string, err error) error {
	return storage.Wrap(op, translateError(err))
}
