package submissions

import (
	"github.com/gofiber/fiber/v2"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/routes/auth"
	"hackathon-club/app/services"
)

type handlers struct {
	submissions *services.SubmissionService
}

func invalidBody() error {
	return apperrors.NewValidation(apperrors.CodeInvalidRequest, "Invalid request body")
}

func (h *handlers) CreateSubmissionAPI(c *fiber.Ctx) error {
	var req services.CreateSubmissionInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}

	sub, err := h.submissions.Create(c.UserContext(), auth.Principal(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    sub,
	})
}

// UpdateSubmissionAPI merges the fields present in the body. A null value
// clears an optional field.
func (h *handlers) UpdateSubmissionAPI(c *fiber.Ctx) error {
	var req services.SubmissionPatch
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}

	sub, err := h.submissions.Update(c.UserContext(), auth.Principal(c), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    sub,
	})
}

func (h *handlers) GetSubmissionAPI(c *fiber.Ctx) error {
	sub, err := h.submissions.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    sub,
	})
}

func (h *handlers) GetSubmissionsByEventAPI(c *fiber.Ctx) error {
	subs, err := h.submissions.ListByEvent(c.UserContext(), c.Params("eventId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(subs),
		"data":    subs,
	})
}

func (h *handlers) GradeSubmissionAPI(c *fiber.Ctx) error {
	var req services.GradeInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}

	sub, err := h.submissions.Grade(c.UserContext(), auth.Principal(c), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    sub,
	})
}

func (h *handlers) GetGradeHistoryAPI(c *fiber.Ctx) error {
	history, err := h.submissions.GradeHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(history),
		"data":    history,
	})
}
