package events

import (
	"github.com/gofiber/fiber/v2"

	"hackathon-club/app/routes/auth"
	"hackathon-club/app/security"
	"hackathon-club/app/services"
)

// SetupEventsRoutes mounts /events. Reads are public; writes are gated by
// capability.
func SetupEventsRoutes(router fiber.Router, events *services.EventService, guard *auth.Guard) {
	h := &handlers{events: events}

	api := router.Group("/events")
	api.Get("/", h.GetEventsAPI)
	api.Get("/:id", h.GetEventAPI)
	api.Post("/", guard.AuthMiddleware, guard.Require(security.CapEventCreate), h.CreateEventAPI)
	api.Put("/:id", guard.AuthMiddleware, guard.Require(security.CapEventUpdate), h.UpdateEventAPI)
	api.Delete("/:id", guard.AuthMiddleware, guard.Require(security.CapEventDelete), h.DeleteEventAPI)
}
