package handlers

import (
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-service/internal/api/dto"
	"github.com/spec-kit/insurance-service/internal/api/i18n"
	"github.com/spec-kit/insurance-service/internal/domain"
	"github.com/spec-kit/insurance-service/internal/service"
)

const defaultPageSize = 50

// AdminApplicationHandler serves application review and the dashboard.
type AdminApplicationHandler struct {
	applications *service.ApplicationService
	reports      *service.ReportService
	location     *time.Location
}

// NewAdminApplicationHandler constructs handler.
func NewAdminApplicationHandler(applications *service.ApplicationService, reports *service.ReportService, loc *time.Location) *AdminApplicationHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AdminApplicationHandler{applications: applications, reports: reports, location: loc}
}

// List GET /api/admin/applications.
func (h *AdminApplicationHandler) List(c *fiber.Ctx) error {
	query, page, pageSize, err := h.parseQuery(c)
	if err != nil {
		return err
	}
	result, err := h.reports.ListApplications(c.UserContext(), query)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, i18n.KeyOK, dto.ApplicationPageResponse{
		Items:    dto.NewApplicationList(result.Items),
		Total:    result.Total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Get GET /api/admin/applications/:id.
func (h *AdminApplicationHandler) Get(c *fiber.Ctx) error {
	view, err := h.applications.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, i18n.KeyOK, dto.NewApplicationResponse(view))
}

// Dashboard GET /api/admin/dashboard.
func (h *AdminApplicationHandler) Dashboard(c *fiber.Ctx) error {
	dash, err := h.reports.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, i18n.KeyOK, dto.NewDashboardResponse(dash))
}

func (h *AdminApplicationHandler) parseQuery(c *fiber.Ctx) (service.ApplicationQuery, int, int, error) {
	var query service.ApplicationQuery

	if id := strings.TrimSpace(c.Query("insuranceId")); id != "" {
		query.InsuranceID = &id
	}
	query.Sort = domain.SortOrder(strings.ToLower(strings.TrimSpace(c.Query("sort"))))

	from, err := queryTime(c, "createdFrom", h.location, false)
	if err != nil {
		return query, 0, 0, err
	}
	to, err := queryTime(c, "createdTo", h.location, true)
	if err != nil {
		return query, 0, 0, err
	}
	query.CreatedFrom, query.CreatedTo = from, to

	page, err := queryInt(c, "page", 1)
	if err != nil {
		return query, 0, 0, err
	}
	if page > math.MaxInt/service.MaxPageSize {
		return query, 0, 0, invalidQuery("page")
	}
	pageSize, err := queryInt(c, "pageSize", defaultPageSize)
	if err != nil {
		return query, 0, 0, err
	}
	if pageSize > service.MaxPageSize {
		pageSize = service.MaxPageSize
	}
	query.Limit = pageSize
	query.Offset = (page - 1) * pageSize
	return query, page, pageSize, nil
}
