package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"hackathon-club/app/security"
)

// TokenCookie holds the session token for browser clients
const TokenCookie = "jwt_token"

const principalKey = "principal"

// tokensFromRequest returns the session tokens offered by the cookie and the
// Bearer Authorization header, cookie first.
func tokensFromRequest(c *fiber.Ctx) []string {
	var tokens []string
	if token := c.Cookies(TokenCookie); token != "" {
		tokens = append(tokens, token)
	}
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token != "" && (len(tokens) == 0 || tokens[0] != token) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// Principal returns the caller set by the auth middleware. The zero value
// means the request is anonymous.
func Principal(c *fiber.Ctx) security.Principal {
	if p, ok := c.Locals(principalKey).(security.Principal); ok {
		return p
	}
	return security.Principal{}
}

func setTokenCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: "Lax",
	})
}

func clearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
