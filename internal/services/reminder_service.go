package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/avelinec/wayfarer/internal/models"
	"github.com/avelinec/wayfarer/internal/notify"
)

var ErrPastInstant = errors.New("reminder instant is not in the future")

// ReminderService maps a to-do's date, time and title to a host alert handle.
// The one business rule lives here: a reminder is only ever scheduled for an
// instant strictly in the future.
type ReminderService struct {
	gateway  notify.Gateway
	location *time.Location
	now      func() time.Time
}

func NewReminderService(gateway notify.Gateway, location *time.Location) *ReminderService {
	if location == nil {
		location = time.Local
	}
	return &ReminderService{gateway: gateway, location: location, now: time.Now}
}

// Schedule registers a one-shot reminder and returns the gateway handle.
func (service *ReminderService) Schedule(dateISO string, timeOfDay string, title string) (string, error) {
	instant, err := service.ComposeInstant(dateISO, timeOfDay)
	if err != nil {
		return "", err
	}
	if !instant.After(service.now()) {
		return "", ErrPastInstant
	}

	handle, err := service.gateway.Schedule(instant, "Todo reminder", title)
	if err != nil {
		return "", fmt.Errorf("schedule reminder: %w", err)
	}
	return handle, nil
}

// Cancel retracts a reminder by handle. Empty, unknown and already-fired
// handles are all no-ops.
func (service *ReminderService) Cancel(handle string) {
	if handle == "" {
		return
	}
	service.gateway.Cancel(handle)
}

// ComposeInstant builds the concrete local-time instant for a calendar day
// and a "HH:mm" wall time, with seconds and milliseconds zeroed.
func (service *ReminderService) ComposeInstant(dateISO string, timeOfDay string) (time.Time, error) {
	day, err := time.ParseInLocation(models.DateLayout, dateISO, service.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse reminder date %q: %w", dateISO, err)
	}
	clock, err := time.Parse(models.TimeLayout, timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse reminder time %q: %w", timeOfDay, err)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, service.location), nil
}

// StillFuture reports whether the composed instant is still ahead of now.
// Malformed inputs count as not-future.
func (service *ReminderService) StillFuture(dateISO string, timeOfDay string) bool {
	instant, err := service.ComposeInstant(dateISO, timeOfDay)
	if err != nil {
		return false
	}
	return instant.After(service.now())
}
