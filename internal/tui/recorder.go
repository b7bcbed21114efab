package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/focusmode/focusmode/internal/timer"
)

// Recorder saves a finished timer run.
type Recorder interface {
	Record(ctx context.Context, event timer.Event, task string) error
}

// HTTPRecorder posts finished runs to a FocusMode server.
type HTTPRecorder struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPRecorder(baseURL string, token string) *HTTPRecorder {
	return &HTTPRecorder{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

func (recorder *HTTPRecorder) Record(ctx context.Context, event timer.Event, task string) error {
	body, err := json.Marshal(map[string]any{
		"timer_type":       event.Type,
		"duration":         event.Duration,
		"task_description": task,
		"completed":        true,
	})
	if err != nil {
		return fmt.Errorf("encode timer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, recorder.baseURL+"/api/timers", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+recorder.token)

	resp, err := recorder.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}
