package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-service/internal/api/dto"
	"github.com/spec-kit/insurance-service/internal/api/i18n"
	"github.com/spec-kit/insurance-service/internal/service"
)

// AdminInsuranceHandler manages the catalog.
type AdminInsuranceHandler struct {
	insurances   *service.InsuranceService
	applications *service.ApplicationService
}

// NewAdminInsuranceHandler constructs handler.
func NewAdminInsuranceHandler(insurances *service.InsuranceService, applications *service.ApplicationService) *AdminInsuranceHandler {
	return &AdminInsuranceHandler{insurances: insurances, applications: applications}
}

// List GET /api/admin/insurances.
func (h *AdminInsuranceHandler) List(c *fiber.Ctx) error {
	list, err := h.insurances.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, i18n.KeyOK, dto.NewInsuranceList(list))
}

// Get GET /api/admin/insurances/:id.
func (h *AdminInsuranceHandler) Get(c *fiber.Ctx) error {
	ins, err := h.insurances.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, i18n.KeyOK, dto.NewInsuranceResponse(ins))
}

// Create POST /api/admin/insurances.
func (h *AdminInsuranceHandler) Create(c *fiber.Ctx) error {
	var req dto.InsuranceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}
	ins, err := h.insurances.Create(adminContext(c), req.Name, req.Description)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, i18n.KeyInsuranceCreated, dto.NewInsuranceResponse(ins))
}

// Update PUT /api/admin/insurances/:id.
func (h *AdminInsuranceHandler) Update(c *fiber.Ctx) error {
	var req dto.InsuranceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}
	ins, err := h.insurances.Update(adminContext(c), c.Params("id"), req.Name, req.Description)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, i18n.KeyInsuranceUpdated, dto.NewInsuranceResponse(ins))
}

// Toggle PATCH /api/admin/insurances/:id/toggle.
func (h *AdminInsuranceHandler) Toggle(c *fiber.Ctx) error {
	ins, err := h.insurances.ToggleActive(adminContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	key := i18n.KeyInsuranceDeactivate
	if ins.IsActive {
		key = i18n.KeyInsuranceActivated
	}
	return respond(c, fiber.StatusOK, key, dto.NewInsuranceResponse(ins))
}

// Delete DELETE /api/admin/insurances/:id.
func (h *AdminInsuranceHandler) Delete(c *fiber.Ctx) error {
	if err := h.insurances.Delete(adminContext(c), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, i18n.KeyInsuranceDeleted, nil)
}

// Applications GET /api/admin/insurances/:id/applications.
func (h *AdminInsuranceHandler) Applications(c *fiber.Ctx) error {
	views, err := h.applications.ListByInsurance(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, i18n.KeyOK, dto.NewApplicationList(views))
}
