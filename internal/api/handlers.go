package api

import (
	"time"

	"github.com/avelinec/wayfarer/internal/geocode"
	"github.com/avelinec/wayfarer/internal/services"
)

type Handler struct {
	identity     *services.IdentityService
	journal      *services.JournalService
	todos        *services.TodoService
	loginFlow    *services.LoginFlow
	geocoder     *geocode.Client
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
}

type HandlerConfig struct {
	Identity     *services.IdentityService
	Journal      *services.JournalService
	Todos        *services.TodoService
	LoginFlow    *services.LoginFlow
	Geocoder     *geocode.Client
	SecretKey    []byte
	Location     *time.Location
	CookieSecure bool
}

func NewHandler(config HandlerConfig) *Handler {
	location := config.Location
	if location == nil {
		location = time.Local
	}
	return &Handler{
		identity:     config.Identity,
		journal:      config.Journal,
		todos:        config.Todos,
		loginFlow:    config.LoginFlow,
		geocoder:     config.Geocoder,
		secretKey:    config.SecretKey,
		location:     location,
		cookieSecure: config.CookieSecure,
	}
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type profilePatchInput struct {
	Name      *string `json:"name"`
	AvatarURI *string `json:"avatarUri"`
}

type photoInput struct {
	URI          string   `json:"uri"`
	Timestamp    int64    `json:"timestamp"`
	DateISO      string   `json:"dateISO"`
	Title        string   `json:"title"`
	Note         string   `json:"note"`
	LocationName *string  `json:"locationName"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

type photoPatchInput struct {
	Title        *string `json:"title"`
	Note         *string `json:"note"`
	LocationName *string `json:"locationName"`
	DateISO      *string `json:"dateISO"`
}

type todoInput struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}
