package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/focusmode/focusmode/internal/memstore"
	"github.com/focusmode/focusmode/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"
)

type unreachableStore struct {
	*memstore.Store
}

func (unreachableStore) Ping(context.Context) error {
	return storage.Wrap("store.ping", errors.New("database is locked"))
}

func newTestApp(t *testing.T, store storage.Store) *fiber.App {
	t.Helper()
	if store == nil {
		store = memstore.New()
	}
	handler, err := NewHandler(store, Options{Secret: []byte("api-test-secret")})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(requestid.New())
	RegisterRoutes(app, handler)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	require.NoError(t, err)
	t.Cleanup(func() { response.Body.Close() })
	return response
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(response.Body).Decode(target))
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]any{}
	bytes, err := io.ReadAll(body)
	require.NoError(t, err, "read response body")
	require.NoError(t, json.Unmarshal(bytes, &payload), "decode response body %q", string(bytes))
	message, _ := payload["error"].(string)
	return message
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Student",
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)

	var payload struct {
		Token string `json:"token"`
	}
	decodeJSON(t, response, &payload)
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

type createdResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func createTestSession(t *testing.T, app *fiber.App, token string, subject string, minutes int) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/sessions", token, fiber.Map{
		"title":    "Study " + subject,
		"subject":  subject,
		"duration": minutes,
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)
	created := createdResponse{}
	decodeJSON(t, response, &created)
	require.NotEmpty(t, created.ID)
	return created.ID
}
