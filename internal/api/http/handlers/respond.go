package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-service/internal/api/dto"
	"github.com/spec-kit/insurance-service/internal/api/i18n"
	"github.com/spec-kit/insurance-service/internal/auth"
	"github.com/spec-kit/insurance-service/internal/events"
	"github.com/spec-kit/insurance-service/internal/service"
	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

func respond(c *fiber.Ctx, status int, key string, data interface{}) error {
	return c.Status(status).JSON(dto.OK(i18n.T(c, key), data))
}

func invalidBody() error {
	return apperrors.NewValidationError("invalid request body", nil).WithKey(i18n.KeyInvalidBody)
}

func invalidQuery(param string) error {
	return apperrors.NewValidationError("invalid query parameter", map[string]any{"param": param}).WithKey(i18n.KeyInvalidQuery)
}

// adminContext carries the caller into service events.
func adminContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return events.ContextWithActor(ctx, events.AdminActor(principal.Username))
	}
	return ctx
}

func queryInt(c *fiber.Ctx, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, invalidQuery(name)
	}
	return v, nil
}

// queryTime parses a date or timestamp bound. A bare date used as an upper bound covers that whole day.
func queryTime(c *fiber.Ctx, name string, loc *time.Location, upper bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(service.DateLayout, raw, loc); err == nil {
		if upper {
			t = t.AddDate(0, 0, 1)
		}
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, invalidQuery(name)
	}
	return &t, nil
}
