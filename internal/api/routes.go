package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/session", handler.AuthRequired, handler.Session)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Patch("", handler.UpdateProfile)

	photos := api.Group("/photos", handler.AuthRequired)
	photos.Get("", handler.ListPhotos)
	photos.Post("", handler.CreatePhoto)
	photos.Patch("/:id", handler.UpdatePhoto)
	photos.Delete("/:id", handler.DeletePhoto)

	todos := api.Group("/todos", handler.AuthRequired)
	todos.Get("", handler.ListTodos)
	todos.Post("", handler.CreateTodo)
	todos.Post("/:id/toggle", handler.ToggleTodo)
	todos.Delete("/:id", handler.DeleteTodo)
}
