package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ReminderDailyStudy     = "daily_study"
	ReminderSessionOverdue = "session_overdue"
)

type Reminder struct {
	UserID string
	Kind   string
	Text   string
}

type Notifier interface {
	Notify(ctx context.Context, reminder Reminder) error
}

// TelegramNotifier posts every reminder to one chat through the Bot API.
type TelegramNotifier struct {
	botToken string
	chatID   string
	endpoint string
	client   *http.Client
}

func NewTelegramNotifier(botToken string, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		endpoint: "https://api.telegram.org",
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

func (notifier *TelegramNotifier) Notify(ctx context.Context, reminder Reminder) error {
	values := url.Values{}
	values.Set("chat_id", notifier.chatID)
	values.Set("text", reminder.Text)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(notifier.endpoint, "/"), notifier.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := notifier.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// LogNotifier records reminders in the log when no delivery channel is set.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (notifier *LogNotifier) Notify(_ context.Context, reminder Reminder) error {
	notifier.logger.Info("reminder",
		zap.String("user_id", reminder.UserID),
		zap.String("kind", reminder.Kind),
		zap.String("text", reminder.Text),
	)
	return nil
}
