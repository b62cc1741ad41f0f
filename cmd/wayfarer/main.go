package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/avelinec/wayfarer/internal/api"
	"github.com/avelinec/wayfarer/internal/cli"
	"github.com/avelinec/wayfarer/internal/db"
	"github.com/avelinec/wayfarer/internal/files"
	"github.com/avelinec/wayfarer/internal/geocode"
	"github.com/avelinec/wayfarer/internal/notify"
	"github.com/avelinec/wayfarer/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	dbPath := getEnv("DB_PATH", filepath.Join("data", "wayfarer.db"))

	if len(os.Args) > 1 && os.Args[1] == "reset-password" {
		if len(os.Args) < 3 {
			log.Fatal("usage: wayfarer reset-password <email>")
		}
		if err := cli.RunResetPasswordCommand(dbPath, os.Args[2]); err != nil {
			log.Fatalf("reset-password failed: %v", err)
		}
		return
	}

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey, err := resolveSecretKey()
	if err != nil {
		log.Fatalf("secret key: %v", err)
	}

	port := getEnv("PORT", "8080")
	dataDir := getEnv("DATA_DIR", "data")
	cookieSecure := getEnv("COOKIE_SECURE", "") == "1"

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	repositories := db.NewRepositories(database)

	library, err := files.NewLibrary(filepath.Join(dataDir, "photos"))
	if err != nil {
		log.Fatalf("photo library init failed: %v", err)
	}

	notificationsEnabled := getEnv("NOTIFICATIONS", "1") == "1"
	gateway := notify.NewTimerGateway(notificationsEnabled, getEnv("NOTIFICATION_CHANNEL", "todos"), nil)
	if err := gateway.EnsureChannel(); err != nil {
		if errors.Is(err, notify.ErrPermissionDenied) {
			log.Printf("notifications disabled: %v", err)
		} else {
			log.Fatalf("notification channel setup failed: %v", err)
		}
	}

	identity := services.NewIdentityService(repositories.KV)
	journal := services.NewJournalService(repositories.KV, library)
	reminders := services.NewReminderService(gateway, location)
	todos := services.NewTodoService(repositories.KV, reminders)
	loginFlow := services.NewLoginFlow(identity, journal)

	var geocoder *geocode.Client
	if getEnv("GEOCODING", "1") == "1" {
		geocoder = geocode.NewClient(getEnv("GEOCODING_URL", ""), "wayfarer/1.0")
	}

	handler := api.NewHandler(api.HandlerConfig{
		Identity:     identity,
		Journal:      journal,
		Todos:        todos,
		LoginFlow:    loginFlow,
		Geocoder:     geocoder,
		SecretKey:    []byte(secretKey),
		Location:     location,
		CookieSecure: cookieSecure,
	})

	app := fiber.New(fiber.Config{
		AppName:               "Wayfarer",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Wayfarer listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func resolveSecretKey() (string, error) {
	secret := os.Getenv("SECRET_KEY")
	switch {
	case secret == "":
		return "", errors.New("SECRET_KEY is required")
	case secret == "change_me_in_production":
		return "", errors.New("SECRET_KEY still uses the placeholder value")
	case len(secret) < 32:
		return "", fmt.Errorf("SECRET_KEY must be at least 32 characters, got %d", len(secret))
	}
	return secret, nil
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
