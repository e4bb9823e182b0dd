package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

// RequireAdmin ensures the caller holds a token carrying the admin claim.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required").WithKey("auth.required")
		}
		if !principal.Admin {
			return apperrors.NewForbidden("admin role required").WithKey("auth.admin_required")
		}
		return c.Next()
	}
}
