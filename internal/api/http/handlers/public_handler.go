package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-service/internal/api/dto"
	"github.com/spec-kit/insurance-service/internal/api/i18n"
	"github.com/spec-kit/insurance-service/internal/service"
	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

// PublicHandler serves the anonymous catalog and intake endpoints.
type PublicHandler struct {
	insurances   *service.InsuranceService
	applications *service.ApplicationService
	location     *time.Location
}

// NewPublicHandler constructs handler.
func NewPublicHandler(insurances *service.InsuranceService, applications *service.ApplicationService, loc *time.Location) *PublicHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &PublicHandler{insurances: insurances, applications: applications, location: loc}
}

// ListInsurances GET /api/public/insurances.
func (h *PublicHandler) ListInsurances(c *fiber.Ctx) error {
	list, err := h.insurances.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, i18n.KeyOK, dto.NewInsuranceList(list))
}

// SubmitApplication POST /api/public/applications.
func (h *PublicHandler) SubmitApplication(c *fiber.Ctx) error {
	var req dto.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}

	var selected time.Time
	if strings.TrimSpace(req.SelectedDate) != "" {
		parsed, err := service.ParseSelectedDate(req.SelectedDate, h.location)
		if err != nil {
			return apperrors.NewValidationError("invalid selected date", map[string]any{"field": "selectedDate"}).
				WithKey(i18n.KeyInvalidDate)
		}
		selected = parsed
	}

	view, err := h.applications.Submit(c.UserContext(), strings.TrimSpace(req.InsuranceID), selected, req.Phone)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, i18n.KeyApplicationCreated, dto.NewApplicationResponse(view))
}

// GetApplication GET /api/public/applications/:id.
func (h *PublicHandler) GetApplication(c *fiber.Ctx) error {
	view, err := h.applications.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, i18n.KeyOK, dto.NewApplicationResponse(view))
}
