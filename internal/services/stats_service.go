package services

import (
	"context"
	"sort"
	"time"

	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/storage"
)

const weeklyWindowDays = 7

type StatsSessionReader interface {
	List(ctx context.Context, filter storage.SessionFilter) ([]models.StudySession, error)
}

type StatsUserReader interface {
	FindByID(ctx context.Context, id string) (models.User, error)
}

type StatsNoteCounter interface {
	Count(ctx context.Context, userID string) (int64, error)
}

type StatsBookCounter interface {
	Count(ctx context.Context, filter storage.BookFilter) (int64, error)
}

type TodayStats struct {
	TotalMinutes  int `json:"total_minutes"`
	TotalSessions int `json:"total_sessions"`
}

type DailyStudy struct {
	Date          string `json:"study_date"`
	SessionsCount int    `json:"sessions_count"`
	TotalMinutes  int    `json:"total_minutes"`
}

type Dashboard struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Avatar            string     `json:"avatar"`
	PushEnabled       bool       `json:"push_enabled"`
	DailyReminders    bool       `json:"daily_reminders"`
	CompletedSessions int        `json:"completed_sessions"`
	TotalNotes        int64      `json:"total_notes"`
	TotalBooks        int64      `json:"total_books"`
	ReadBooks         int64      `json:"read_books"`
	TotalStudyMinutes int        `json:"total_study_minutes"`
	Today             TodayStats `json:"-"`
}

// StatsService projects completed sessions onto calendar days of one
// location. It never writes.
type StatsService struct {
	sessions StatsSessionReader
	users    StatsUserReader
	notes    StatsNoteCounter
	books    StatsBookCounter
	location *time.Location
	now      func() time.Time
}

func NewStatsService(sessions StatsSessionReader, users StatsUserReader, notes StatsNoteCounter, books StatsBookCounter, location *time.Location) *StatsService {
	if location == nil {
		location = time.UTC
	}
	return &StatsService{
		sessions: sessions,
		users:    users,
		notes:    notes,
		books:    books,
		location: location,
		now:      systemNow,
	}
}

// Today sums completed sessions created on the current local date.
func (service *StatsService) Today(ctx context.Context, userID string) (TodayStats, error) {
	dayStart, dayEnd := DayRange(service.now(), service.location)
	sessions, err := service.sessions.List(ctx, storage.SessionFilter{
		UserID:      userID,
		Status:      models.SessionCompleted,
		CreatedFrom: dayStart,
		CreatedTo:   dayEnd,
	})
	if err != nil {
		return TodayStats{}, storeFailure(err)
	}
	return summarizeToday(sessions), nil
}

// Weekly groups completed sessions of today and the six days before by
// local date. Days without sessions are omitted; rows are newest first.
func (service *StatsService) Weekly(ctx context.Context, userID string) ([]DailyStudy, error) {
	todayStart, tomorrow := DayRange(service.now(), service.location)
	sessions, err := service.sessions.List(ctx, storage.SessionFilter{
		UserID:      userID,
		Status:      models.SessionCompleted,
		CreatedFrom: todayStart.AddDate(0, 0, -(weeklyWindowDays - 1)),
		CreatedTo:   tomorrow,
	})
	if err != nil {
		return nil, storeFailure(err)
	}
	return GroupByDate(sessions, service.location), nil
}

func (service *StatsService) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return Dashboard{}, storeFailure(err)
	}

	completed, err := service.sessions.List(ctx, storage.SessionFilter{UserID: userID, Status: models.SessionCompleted})
	if err != nil {
		return Dashboard{}, storeFailure(err)
	}
	totalNotes, err := service.notes.Count(ctx, userID)
	if err != nil {
		return Dashboard{}, storeFailure(err)
	}
	totalBooks, err := service.books.Count(ctx, storage.BookFilter{UserID: userID})
	if err != nil {
		return Dashboard{}, storeFailure(err)
	}
	read := true
	readBooks, err := service.books.Count(ctx, storage.BookFilter{UserID: userID, IsComplete: &read})
	if err != nil {
		return Dashboard{}, storeFailure(err)
	}

	dayStart, dayEnd := DayRange(service.now(), service.location)
	todays := make([]models.StudySession, 0)
	totalMinutes := 0
	for _, session := range completed {
		totalMinutes += session.Duration
		if !session.CreatedAt.Before(dayStart) && session.CreatedAt.Before(dayEnd) {
			todays = append(todays, session)
		}
	}

	return Dashboard{
		Name:              user.Name,
		Email:             user.Email,
		Avatar:            user.Avatar,
		PushEnabled:       user.PushEnabled,
		DailyReminders:    user.DailyReminders,
		CompletedSessions: len(completed),
		TotalNotes:        totalNotes,
		TotalBooks:        totalBooks,
		ReadBooks:         readBooks,
		TotalStudyMinutes: totalMinutes,
		Today:             summarizeToday(todays),
	}, nil
}

// GroupByDate counts completed sessions per local creation date, newest date
// first. Sessions in other states are ignored.
func GroupByDate(sessions []models.StudySession, location *time.Location) []DailyStudy {
	byDate := make(map[string]*DailyStudy)
	for _, session := range sessions {
		if session.Status != models.SessionCompleted {
			continue
		}
		key := DateKey(session.CreatedAt, location)
		row, ok := byDate[key]
		if !ok {
			row = &DailyStudy{Date: key}
			byDate[key] = row
		}
		row.SessionsCount++
		row.TotalMinutes += session.Duration
	}

	rows := make([]DailyStudy, 0, len(byDate))
	for _, row := range byDate {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date > rows[j].Date
	})
	return rows
}

func summarizeToday(sessions []models.StudySession) TodayStats {
	stats := TodayStats{}
	for _, session := range sessions {
		if session.Status != models.SessionCompleted {
			continue
		}
		stats.TotalSessions++
		stats.TotalMinutes += session.Duration
	}
	return stats
}
