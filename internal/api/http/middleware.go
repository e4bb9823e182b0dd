package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-service/internal/api/dto"
	"github.com/spec-kit/insurance-service/internal/api/i18n"
	"github.com/spec-kit/insurance-service/internal/observability"
	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

// MiddlewareConfig controls the global middleware chain.
type MiddlewareConfig struct {
	Timeout       time.Duration
	CORSOrigins   string
	DefaultLocale string
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
// The request logger sits outside the error handler so it sees the rendered status.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg MiddlewareConfig) {
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(i18n.Middleware(cfg.DefaultLocale))
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				err = renderError(c, err, logger, metrics)
			}
		}()
		return c.Next()
	}
}

// ErrorHandler renders errors that escape the middleware chain, such as unmatched routes.
func ErrorHandler(logger *zap.Logger, metrics *observability.Metrics) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return renderError(c, err, logger, metrics)
	}
}

func renderError(c *fiber.Ctx, err error, logger *zap.Logger, metrics *observability.Metrics) error {
	domainErr := fromFiberError(err)
	metrics.RecordError(domainErr.Code)

	if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		requestID, _ := c.Locals("requestid").(string)
		logger.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("request_id", requestID),
			zap.Error(domainErr))
	}

	message := domainErr.Message
	if domainErr.Key != "" {
		message = i18n.Translate(i18n.Lang(c), domainErr.Key, domainErr.Message)
	}
	body := dto.Fail(message)
	if domainErr.Code == apperrors.CodeValidation {
		body.Errors = []string{message}
	}
	return c.Status(domainErr.HTTPStatus).JSON(body)
}

// fromFiberError maps framework errors onto the domain error taxonomy.
func fromFiberError(err error) *apperrors.DomainError {
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) {
		return apperrors.ToDomainError(err)
	}
	switch fiberErr.Code {
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return apperrors.NewDomainError(apperrors.CodeNotFound, "resource not found", fiber.StatusNotFound, nil).
			WithKey(i18n.KeyRouteNotFound)
	case fiber.StatusUnauthorized:
		return apperrors.NewUnauthorized(fiberErr.Message).WithKey("auth.required")
	case fiber.StatusForbidden:
		return apperrors.NewForbidden(fiberErr.Message).WithKey("auth.admin_required")
	}
	if fiberErr.Code >= fiber.StatusBadRequest && fiberErr.Code < fiber.StatusInternalServerError {
		return apperrors.NewValidationError("invalid request", nil).WithKey(i18n.KeyInvalidBody)
	}
	return apperrors.NewInternalError(err)
}
