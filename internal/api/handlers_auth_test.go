package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterReturnsUserAndToken(t *testing.T) {
	app := newTestApp(t, nil)

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "ada",
		"email":    "ada@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, response.StatusCode)

	var payload struct {
		Message string         `json:"message"`
		Token   string         `json:"token"`
		User    map[string]any `json:"user"`
	}
	decodeJSON(t, response, &payload)
	assert.Equal(t, "User created successfully", payload.Message)
	assert.NotEmpty(t, payload.Token)
	assert.Equal(t, "ada@example.com", payload.User["email"])
	assert.Equal(t, "A", payload.User["avatar"])
	assert.NotContains(t, payload.User, "password_hash")
}

func TestRegisterValidationMessages(t *testing.T) {
	app := newTestApp(t, nil)

	cases := []struct {
		name string
		body fiber.Map
		want string
	}{
		{name: "missing fields", body: fiber.Map{"email": "a@example.com"}, want: "All fields are required"},
		{name: "short password", body: fiber.Map{"name": "A", "email": "a@example.com", "password": "123"}, want: "Password must be at least 6 characters"},
		{name: "bad email", body: fiber.Map{"name": "A", "email": "nope", "password": "secret1"}, want: "Invalid email address"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, response.StatusCode)
			assert.Equal(t, tc.want, readAPIError(t, response.Body))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t, nil)
	registerTestUser(t, app, "ada@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Other",
		"email":    "ada@example.com",
		"password": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "User already exists", readAPIError(t, response.Body))
}

func TestLoginReturnsSettings(t *testing.T) {
	app := newTestApp(t, nil)
	registerTestUser(t, app, "ada@example.com")

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ada@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, response.StatusCode)

	var payload struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID       string          `json:"id"`
			Settings map[string]bool `json:"settings"`
		} `json:"user"`
	}
	decodeJSON(t, response, &payload)
	assert.Equal(t, "Login successful", payload.Message)
	assert.NotEmpty(t, payload.Token)
	assert.Equal(t, map[string]bool{
		"push_enabled":       false,
		"daily_reminders":    true,
		"session_reminders":  true,
		"achievement_alerts": true,
	}, payload.User.Settings)
}

func TestLoginFailuresShareOneResponse(t *testing.T) {
	app := newTestApp(t, nil)
	registerTestUser(t, app, "ada@example.com")

	wrongPassword := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ada@example.com", "password": "nope-nope"})
	unknownEmail := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ghost@example.com", "password": "secret1"})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode)
	assert.Equal(t, "Invalid credentials", readAPIError(t, wrongPassword.Body))
	assert.Equal(t, "Invalid credentials", readAPIError(t, unknownEmail.Body))

	missing := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ada@example.com"})
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)
	assert.Equal(t, "Email and password are required", readAPIError(t, missing.Body))
}

func TestLoginThrottlesRepeatedFailures(t *testing.T) {
	app := newTestApp(t, nil)

	for attempt := 0; attempt < loginAttemptLimit; attempt++ {
		response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ghost@example.com", "password": "secret1"})
		require.Equal(t, http.StatusUnauthorized, response.StatusCode, "attempt %d", attempt+1)
	}

	response := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ghost@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusTooManyRequests, response.StatusCode)
}

func TestProtectedRoutesRequireBearerToken(t *testing.T) {
	app := newTestApp(t, nil)

	missing := doJSON(t, app, http.MethodGet, "/api/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, missing.StatusCode)
	assert.Equal(t, "Access token required", readAPIError(t, missing.Body))

	invalid := doJSON(t, app, http.MethodGet, "/api/sessions", "not-a-jwt", nil)
	assert.Equal(t, http.StatusForbidden, invalid.StatusCode)
	assert.Equal(t, "Invalid token", readAPIError(t, invalid.Body))
}

func TestBearerToken(t *testing.T) {
	cases := map[string]struct {
		header string
		token  string
		ok     bool
	}{
		"bearer":       {header: "Bearer abc", token: "abc", ok: true},
		"lowercase":    {header: "bearer abc", token: "abc", ok: true},
		"basic":        {header: "Basic abc", ok: false},
		"empty token":  {header: "Bearer   ", ok: false},
		"no scheme":    {header: "abc", ok: false},
		"empty header": {header: "", ok: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			token, ok := bearerToken(tc.header)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.token, token)
		})
	}
}
