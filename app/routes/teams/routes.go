package teams

import (
	"github.com/gofiber/fiber/v2"

	"hackathon-club/app/routes/auth"
	"hackathon-club/app/services"
)

func SetupTeamsRoutes(router fiber.Router, teams *services.TeamService, guard *auth.Guard) {
	h := &handlers{teams: teams}

	api := router.Group("/teams")
	api.Get("/", h.GetTeamsAPI)
	api.Post("/", guard.AuthMiddleware, h.CreateTeamAPI)
	api.Get("/myteams", guard.AuthMiddleware, h.GetMyTeamsAPI)
	api.Put("/:id/join", guard.AuthMiddleware, h.JoinTeamAPI)
}
