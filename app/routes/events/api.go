package events

import (
	"github.com/gofiber/fiber/v2"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/routes/auth"
	"hackathon-club/app/services"
)

type handlers struct {
	events *services.EventService
}

// GetEventsAPI returns every event, soonest first
func (h *handlers) GetEventsAPI(c *fiber.Ctx) error {
	events, err := h.events.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(events),
		"data":    events,
	})
}

func (h *handlers) GetEventAPI(c *fiber.Ctx) error {
	event, err := h.events.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    event,
	})
}

// CreateEventAPI creates a new event owned by the caller
func (h *handlers) CreateEventAPI(c *fiber.Ctx) error {
	var req services.EventInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation(apperrors.CodeInvalidRequest, "Invalid request body")
	}

	event, err := h.events.Create(c.UserContext(), auth.Principal(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    event,
	})
}

// UpdateEventAPI applies the fields present in the body
func (h *handlers) UpdateEventAPI(c *fiber.Ctx) error {
	var req services.EventPatch
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation(apperrors.CodeInvalidRequest, "Invalid request body")
	}

	event, err := h.events.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    event,
	})
}

func (h *handlers) DeleteEventAPI(c *fiber.Ctx) error {
	if err := h.events.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
	})
}
