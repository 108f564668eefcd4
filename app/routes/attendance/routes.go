package attendance

import (
	"github.com/gofiber/fiber/v2"

	"hackathon-club/app/routes/auth"
	"hackathon-club/app/security"
	"hackathon-club/app/services"
)

func SetupAttendanceRoutes(router fiber.Router, attendance *services.AttendanceService, guard *auth.Guard) {
	h := &handlers{attendance: attendance}

	api := router.Group("/attendance")
	api.Use(guard.AuthMiddleware)
	api.Post("/", guard.Require(security.CapAttendanceMark), h.MarkAttendanceAPI)
	api.Get("/:eventId", h.GetEventAttendanceAPI)
	api.Get("/:eventId/export", guard.Require(security.CapAttendanceExport), h.ExportAttendanceAPI)
}
