package auth

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

type stubAuthenticator struct {
	principals map[string]*Principal
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*Principal, error) {
	if p, ok := s.principals[token]; ok {
		return p, nil
	}
	return nil, apperrors.NewUnauthorized("invalid token")
}

func newTestApp() *fiber.App {
	mw := NewAuthMiddleware(stubAuthenticator{principals: map[string]*Principal{
		"good":   {AdminID: "a-1", Username: "admin", Admin: true},
		"viewer": {AdminID: "a-2", Username: "viewer"},
	}})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	app.Get("/secure", mw.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(p.Username)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"empty token", "Bearer ", fiber.StatusUnauthorized},
		{"unknown token", "Bearer nope", fiber.StatusUnauthorized},
		{"non admin", "Bearer viewer", fiber.StatusForbidden},
		{"admin", "Bearer good", fiber.StatusOK},
		{"scheme is case insensitive", "bearer good", fiber.StatusOK},
	}

	app := newTestApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
