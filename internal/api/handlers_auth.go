package api

import (
	"errors"
	"strings"

	"github.com/avelinec/wayfarer/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if credentials.Name == "" {
		return apiError(c, fiber.StatusBadRequest, "name required")
	}
	if err := services.ValidatePasswordStrength(credentials.Password); err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "weak password")
	}

	session, err := handler.loginFlow.Register(credentials.Email, credentials.Password, credentials.Name)
	if errors.Is(err, services.ErrDuplicateEmail) {
		return apiError(c, fiber.StatusConflict, "email already exists")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	if err := handler.setAuthCookie(c, session.User); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(sessionPayload(session))
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	session, err := handler.loginFlow.Login(credentials.Email, credentials.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to log in")
	}

	if err := handler.setAuthCookie(c, session.User); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(sessionPayload(session))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	if err := handler.loginFlow.Logout(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to log out")
	}
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// Session returns the restored session for the current auth cookie, the same
// payload login produces. The mobile client calls this once at startup.
func (handler *Handler) Session(c *fiber.Ctx) error {
	session, ok := handler.loginFlow.Resume()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "no session")
	}
	return c.JSON(sessionPayload(session))
}

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return credentialsInput{}, err
	}

	input.Email = strings.TrimSpace(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if input.Email == "" || !strings.Contains(input.Email, "@") || input.Password == "" {
		return credentialsInput{}, errors.New("invalid credentials input")
	}
	return input, nil
}

func sessionPayload(session services.SessionData) fiber.Map {
	return fiber.Map{
		"user":    session.User,
		"photos":  session.Photos,
		"profile": session.Profile,
	}
}
