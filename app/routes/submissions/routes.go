package submissions

import (
	"github.com/gofiber/fiber/v2"

	"hackathon-club/app/routes/auth"
	"hackathon-club/app/security"
	"hackathon-club/app/services"
)

func SetupSubmissionsRoutes(router fiber.Router, submissions *services.SubmissionService, guard *auth.Guard) {
	h := &handlers{submissions: submissions}

	api := router.Group("/submissions")
	api.Use(guard.AuthMiddleware)
	api.Post("/", h.CreateSubmissionAPI)
	api.Get("/event/:eventId", h.GetSubmissionsByEventAPI)
	api.Get("/:id", h.GetSubmissionAPI)
	api.Put("/:id", h.UpdateSubmissionAPI)
	api.Post("/:id/grade", guard.Require(security.CapSubmissionGrade), h.GradeSubmissionAPI)
	api.Get("/:id/grades", guard.Require(security.CapSubmissionHistory), h.GetGradeHistoryAPI)
}
