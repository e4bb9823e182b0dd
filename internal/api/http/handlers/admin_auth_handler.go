package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-service/internal/api/dto"
	"github.com/spec-kit/insurance-service/internal/api/i18n"
	"github.com/spec-kit/insurance-service/internal/auth"
	"github.com/spec-kit/insurance-service/internal/service"
	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

// AdminAuthHandler serves login and profile.
type AdminAuthHandler struct {
	admins *service.AdminService
}

// NewAdminAuthHandler constructs handler.
func NewAdminAuthHandler(admins *service.AdminService) *AdminAuthHandler {
	return &AdminAuthHandler{admins: admins}
}

// Login POST /api/admin/login.
func (h *AdminAuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}

	result, err := h.admins.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	expiresAt := result.ExpiresAt
	return c.JSON(dto.LoginResponse{
		Response:  dto.OK(i18n.T(c, i18n.KeyLoginSucceeded), dto.NewAdminProfileResponse(result.Admin)),
		Token:     result.Token,
		ExpiresAt: &expiresAt,
	})
}

// Profile GET /api/admin/profile.
func (h *AdminAuthHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required").WithKey("auth.required")
	}
	admin, err := h.admins.GetProfile(c.UserContext(), principal.Username)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, i18n.KeyOK, dto.NewAdminProfileResponse(admin))
}
