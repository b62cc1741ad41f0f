package api

import (
	"log"
	"time"

	"github.com/avelinec/wayfarer/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListPhotos(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(handler.journal.LoadPhotos(user.ID))
}

func (handler *Handler) CreatePhoto(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := photoInput{}
	if err := c.BodyParser(&input); err != nil || input.URI == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if input.DateISO == "" {
		input.DateISO = models.TodayISO(handler.location)
	}
	if input.Timestamp == 0 {
		input.Timestamp = time.Now().UnixMilli()
	}
	locationName := handler.resolveLocationName(c, input)

	photo, err := handler.journal.AddPhoto(user.ID, models.JournalPhoto{
		URI:          input.URI,
		Timestamp:    input.Timestamp,
		DateISO:      input.DateISO,
		LocationName: locationName,
		Title:        input.Title,
		Note:         input.Note,
	})
	if err != nil {
		return apiError(c, fiber.StatusUnprocessableEntity, "failed to store photo")
	}

	return c.Status(fiber.StatusCreated).JSON(photo)
}

func (handler *Handler) UpdatePhoto(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := photoPatchInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	photo, found := handler.journal.UpdatePhoto(user.ID, c.Params("id"), models.PhotoPatch{
		Title:        input.Title,
		Note:         input.Note,
		LocationName: input.LocationName,
		DateISO:      input.DateISO,
	})
	if !found {
		return apiError(c, fiber.StatusNotFound, "photo not found")
	}
	return c.JSON(photo)
}

// DeletePhoto removes the metadata record. The backing file is released only
// when the client asks for it with ?purge=1; a bare delete leaves the file in
// the library.
func (handler *Handler) DeletePhoto(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	photoID := c.Params("id")
	if c.Query("purge") == "1" {
		for _, photo := range handler.journal.LoadPhotos(user.ID) {
			if photo.ID == photoID {
				if err := handler.journal.DeletePhotoFile(photo.URI); err != nil {
					log.Printf("photos: release backing file failed: %v", err)
				}
				break
			}
		}
	}

	handler.journal.RemovePhoto(user.ID, photoID)
	return sendNoContent(c)
}

// resolveLocationName keeps an explicit location name, otherwise asks the
// geocoder when coordinates came along. Geocoding is best-effort: a photo
// without a place name is fine.
func (handler *Handler) resolveLocationName(c *fiber.Ctx, input photoInput) *string {
	if input.LocationName != nil {
		return input.LocationName
	}
	if handler.geocoder == nil || input.Latitude == nil || input.Longitude == nil {
		return nil
	}

	name, err := handler.geocoder.ReverseGeocode(c.Context(), *input.Latitude, *input.Longitude)
	if err != nil {
		log.Printf("photos: reverse geocode failed: %v", err)
		return nil
	}
	if name == "" {
		return nil
	}
	return &name
}
