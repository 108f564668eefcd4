package server

import (
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"hackathon-club/app/config"
	"hackathon-club/app/database"
	"hackathon-club/app/routes/attendance"
	"hackathon-club/app/routes/auth"
	"hackathon-club/app/routes/events"
	"hackathon-club/app/routes/health"
	"hackathon-club/app/routes/submissions"
	"hackathon-club/app/routes/teams"
	"hackathon-club/app/security"
	"hackathon-club/app/services"
)

// Services bundles everything the HTTP layer calls into
type Services struct {
	Users       *services.UserService
	Events      *services.EventService
	Teams       *services.TeamService
	Attendance  *services.AttendanceService
	Submissions *services.SubmissionService
	Policy      security.Authorizer
	DB          health.Pinger
}

// NewServices wires the domain services over one store
func NewServices(cfg *config.Config, store *database.Store, verifier security.IDTokenVerifier, loc *time.Location) *Services {
	hasher := security.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := security.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	return &Services{
		Users:       services.NewUserService(store, hasher, tokens, verifier, cfg.Auth.AdminEmails),
		Events:      services.NewEventService(store),
		Teams:       services.NewTeamService(store, store),
		Attendance:  services.NewAttendanceService(store, store, store, loc),
		Submissions: services.NewSubmissionService(store, store, store),
		Policy:      security.DefaultPolicy(),
		DB:          store,
	}
}

// New builds the fiber app with middleware and every route mounted
func New(corsCfg config.CORSConfig, svc *Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "hackathon-club",
		ErrorHandler: ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}\n",
	}))
	app.Use(newCORS(corsCfg))

	health.SetupHealthRoutes(app, svc.DB)

	guard := auth.NewGuard(svc.Users, svc.Policy)
	api := app.Group("/api")
	auth.SetupAuthRoutes(api, svc.Users, guard)
	events.SetupEventsRoutes(api, svc.Events, guard)
	teams.SetupTeamsRoutes(api, svc.Teams, guard)
	attendance.SetupAttendanceRoutes(api, svc.Attendance, guard)
	submissions.SetupSubmissionsRoutes(api, svc.Submissions, guard)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})

	return app
}

func newCORS(cfg config.CORSConfig) fiber.Handler {
	origins := strings.Join(cfg.AllowOrigins, ",")
	if origins == "" {
		origins = "*"
	}
	// credentials cannot be combined with a wildcard origin
	wildcard := origins == "*" || slices.Contains(cfg.AllowOrigins, "*")
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: !wildcard,
	})
}
