package api

import (
	"github.com/focusmode/focusmode/internal/models"
	"github.com/focusmode/focusmode/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if !parseBody(c, &input) {
		return apiError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	user, token, err := handler.authService.Register(c.UserContext(), services.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return handler.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    publicUser(user, false),
		"token":   token,
	})
}

// Login counts failed attempts per client address and refuses further
// attempts once the window is full. A success clears the counter.
func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptLimit, loginAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "Too many login attempts, try again later")
	}

	input := loginInput{}
	if !parseBody(c, &input) {
		return apiError(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	user, token, err := handler.authService.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		handler.loginLimiter.addFailure(limiterKey, now, loginAttemptWindow)
		return handler.respondError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    publicUser(user, true),
		"token":   token,
	})
}

func publicUser(user models.User, withSettings bool) userView {
	view := userView{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	}
	if withSettings {
		settings := user.Settings()
		view.Settings = &settings
	}
	return view
}
