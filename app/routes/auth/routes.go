package auth

import (
	"github.com/gofiber/fiber/v2"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/security"
	"hackathon-club/app/services"
)

// Guard authenticates requests and enforces capabilities
type Guard struct {
	users  *services.UserService
	policy security.Authorizer
}

func NewGuard(users *services.UserService, policy security.Authorizer) *Guard {
	return &Guard{users: users, policy: policy}
}

// AuthMiddleware validates the session token and stores the caller in the
// request context. A rejected cookie falls back to the Bearer header.
func (g *Guard) AuthMiddleware(c *fiber.Ctx) error {
	tokens := tokensFromRequest(c)
	if len(tokens) == 0 {
		return apperrors.NewUnauthorized(apperrors.CodeMissingToken, "Not authorized, no token")
	}

	var err error
	for _, token := range tokens {
		var principal security.Principal
		principal, err = g.users.Authenticate(c.UserContext(), token)
		if err == nil {
			c.Locals(principalKey, principal)
			c.Locals("user_id", principal.UserID)
			return c.Next()
		}
		if !apperrors.Is(err, apperrors.KindUnauthorized) {
			return err
		}
	}
	return err
}

// Require allows the request through only when the caller holds
// capability. It must run after AuthMiddleware.
func (g *Guard) Require(capability security.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := g.policy.Authorize(Principal(c), capability); err != nil {
			return err
		}
		return c.Next()
	}
}

func SetupAuthRoutes(router fiber.Router, users *services.UserService, guard *Guard) {
	h := &handlers{users: users}
	auth := router.Group("/auth")

	// Public routes
	auth.Post("/register", h.RegisterAPI)
	auth.Post("/login", h.LoginAPI)
	auth.Post("/google", h.GoogleAPI)
	auth.Post("/logout", h.LogoutAPI)

	// Protected routes
	auth.Get("/me", guard.AuthMiddleware, h.MeAPI)
	auth.Post("/change-password", guard.AuthMiddleware, h.ChangePasswordAPI)
	auth.Put("/users/:id/role", guard.AuthMiddleware, guard.Require(security.CapUserSetRole), h.SetRoleAPI)
}
