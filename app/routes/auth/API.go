package auth

import (
	"github.com/gofiber/fiber/v2"

	"hackathon-club/app/apperrors"
	"hackathon-club/app/models"
	"hackathon-club/app/services"
)

type handlers struct {
	users *services.UserService
}

func invalidRequest() error {
	return apperrors.NewValidation(apperrors.CodeInvalidRequest, "Invalid request")
}

func (h *handlers) RegisterAPI(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return invalidRequest()
	}

	res, err := h.users.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	setTokenCookie(c, res.Token, h.users.TokenTTL())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    res,
	})
}

func (h *handlers) LoginAPI(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return invalidRequest()
	}

	res, err := h.users.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	setTokenCookie(c, res.Token, h.users.TokenTTL())
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data":    res,
	})
}

func (h *handlers) GoogleAPI(c *fiber.Ctx) error {
	type GoogleRequest struct {
		IDToken string `json:"idToken"`
	}

	var req GoogleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidRequest()
	}

	res, err := h.users.GoogleSignIn(c.UserContext(), req.IDToken)
	if err != nil {
		return err
	}
	setTokenCookie(c, res.Token, h.users.TokenTTL())
	return c.JSON(fiber.Map{
		"success": true,
		"data":    res,
	})
}

func (h *handlers) LogoutAPI(c *fiber.Ctx) error {
	clearTokenCookie(c)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

func (h *handlers) MeAPI(c *fiber.Ctx) error {
	user, err := h.users.Me(c.UserContext(), Principal(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

func (h *handlers) ChangePasswordAPI(c *fiber.Ctx) error {
	var req services.ChangePasswordInput
	if err := c.BodyParser(&req); err != nil {
		return invalidRequest()
	}

	if err := h.users.ChangePassword(c.UserContext(), Principal(c), req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password changed successfully",
	})
}

func (h *handlers) SetRoleAPI(c *fiber.Ctx) error {
	type RoleRequest struct {
		Role string `json:"role"`
	}

	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidRequest()
	}

	user, err := h.users.SetRole(c.UserContext(), c.Params("id"), models.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}
