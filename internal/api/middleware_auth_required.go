package api

import (
	"strings"

	"github.com/focusmode/focusmode/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	contextIdentityKey = "current_identity"
	resourceKey        = "current_resource"
	requestIDKey       = "requestid"
)

// AuthRequired accepts "Authorization: Bearer <token>". A missing or
// malformed header is 401, a token that fails verification is 403.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	rawToken, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, msgAccessRequired)
	}

	identity, err := handler.authService.Authenticate(rawToken)
	if err != nil {
		return handler.respondError(c, err)
	}

	c.Locals(contextIdentityKey, identity)
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func currentIdentity(c *fiber.Ctx) services.Identity {
	identity, _ := c.Locals(contextIdentityKey).(services.Identity)
	return identity
}
