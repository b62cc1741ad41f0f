package api

import (
	"strings"
	"time"

	"github.com/avelinec/wayfarer/internal/models"
	"github.com/avelinec/wayfarer/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ListTodos returns the whole ledger, or one day's items ordered by time when
// ?date= is given. The ledger is app-global: every authenticated user sees
// the same items.
func (handler *Handler) ListTodos(c *fiber.Ctx) error {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		return c.JSON(handler.todos.All())
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	return c.JSON(handler.todos.ListByDate(date))
}

func (handler *Handler) CreateTodo(c *fiber.Ctx) error {
	input := todoInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" || input.Date == "" {
		return apiError(c, fiber.StatusBadRequest, "title and date required")
	}
	if _, err := time.Parse(models.DateLayout, input.Date); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	if input.Time != "" {
		if _, err := time.Parse(models.TimeLayout, input.Time); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid time")
		}
	}

	item := handler.todos.Add(services.TodoInput{
		Title: input.Title,
		Date:  input.Date,
		Time:  input.Time,
		Notes: input.Notes,
	})
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (handler *Handler) ToggleTodo(c *fiber.Ctx) error {
	handler.todos.Toggle(c.Params("id"))
	return sendNoContent(c)
}

func (handler *Handler) DeleteTodo(c *fiber.Ctx) error {
	handler.todos.Remove(c.Params("id"))
	return sendNoContent(c)
}
