package teams

import (
	"github.com/gofiber/fiber/v2"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/routes/auth"
	"hackathon-club/app/services"
)

type handlers struct {
	teams *services.TeamService
}

func (h *handlers) GetTeamsAPI(c *fiber.Ctx) error {
	teams, err := h.teams.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(teams),
		"data":    teams,
	})
}

func (h *handlers) CreateTeamAPI(c *fiber.Ctx) error {
	var req services.CreateTeamInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation(apperrors.CodeInvalidRequest, "Invalid request body")
	}

	team, err := h.teams.Create(c.UserContext(), auth.Principal(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    team,
	})
}

// GetMyTeamsAPI lists the teams the caller leads or belongs to
func (h *handlers) GetMyTeamsAPI(c *fiber.Ctx) error {
	teams, err := h.teams.Mine(c.UserContext(), auth.Principal(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(teams),
		"data":    teams,
	})
}

func (h *handlers) JoinTeamAPI(c *fiber.Ctx) error {
	team, err := h.teams.Join(c.UserContext(), auth.Principal(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    team,
	})
}
