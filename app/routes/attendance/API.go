package attendance

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/services"
)

type handlers struct {
	attendance *services.AttendanceService
}

func (h *handlers) MarkAttendanceAPI(c *fiber.Ctx) error {
	var req services.MarkAttendanceInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation(apperrors.CodeInvalidRequest, "Invalid request body")
	}

	record, err := h.attendance.Mark(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    record,
	})
}

func (h *handlers) GetEventAttendanceAPI(c *fiber.Ctx) error {
	records, err := h.attendance.ForEvent(c.UserContext(), c.Params("eventId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(records),
		"data":    records,
	})
}

// ExportAttendanceAPI streams the event's attendance as a CSV download
func (h *handlers) ExportAttendanceAPI(c *fiber.Ctx) error {
	eventID := c.Params("eventId")
	body, err := h.attendance.ExportCSV(c.UserContext(), eventID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", services.ExportFilename(eventID)))
	return c.Send(body)
}
