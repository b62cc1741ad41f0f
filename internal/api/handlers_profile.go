package api

import (
	"errors"

	"github.com/avelinec/wayfarer/internal/models"
	"github.com/avelinec/wayfarer/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(handler.journal.LoadProfile(user.ID))
}

// UpdateProfile patches the user record and mirrors name and avatar into the
// journal profile, so both read paths agree afterwards.
func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := profilePatchInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.identity.UpdateProfile(user.ID, models.ProfilePatch{
		Name:      input.Name,
		AvatarURI: input.AvatarURI,
	})
	if errors.Is(err, services.ErrUserNotFound) {
		return apiError(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
	}

	profile := handler.journal.LoadProfile(user.ID)
	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.AvatarURI != nil {
		profile.AvatarURI = input.AvatarURI
	}
	handler.journal.SaveProfile(user.ID, profile)

	return c.JSON(fiber.Map{
		"user":    updated,
		"profile": profile,
	})
}
