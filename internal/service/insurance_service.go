package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spec-kit/insurance-service/internal/domain"
	"github.com/spec-kit/insurance-service/internal/events"
	"github.com/spec-kit/insurance-service/internal/repository"
	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

// InsuranceService manages the product catalog.
type InsuranceService struct {
	insurances   repository.InsuranceRepository
	applications repository.ApplicationRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	clock        Clock
}

// InsuranceDependencies bundles collaborators for the catalog service.
type InsuranceDependencies struct {
	InsuranceRepo   repository.InsuranceRepository
	ApplicationRepo repository.ApplicationRepository
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
	Clock           Clock
}

// NewInsuranceService builds the service.
func NewInsuranceService(deps InsuranceDependencies) *InsuranceService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsuranceService{
		insurances:   deps.InsuranceRepo,
		applications: deps.ApplicationRepo,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
		clock:        deps.Clock,
	}
}

// ListAll returns every product ordered by name.
func (s *InsuranceService) ListAll(ctx context.Context) ([]domain.Insurance, error) {
	return s.insurances.ListAll(ctx)
}

// ListActive returns the products open for applications, ordered by name.
func (s *InsuranceService) ListActive(ctx context.Context) ([]domain.Insurance, error) {
	return s.insurances.ListActive(ctx)
}

// GetByID returns one product.
func (s *InsuranceService) GetByID(ctx context.Context, id string) (*domain.Insurance, error) {
	ins, err := s.insurances.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}
	return ins, nil
}

// Create adds an active product with a unique name.
func (s *InsuranceService) Create(ctx context.Context, name, description string) (*domain.Insurance, error) {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if err := validateInsurance(name, description); err != nil {
		return nil, err
	}

	if existing, err := s.insurances.GetByName(ctx, name); err == nil && existing != nil {
		return nil, duplicateName(name)
	} else if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}

	ins := &domain.Insurance{
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   s.clock.now(),
	}
	if err := s.insurances.Create(ctx, ins); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, duplicateName(name)
		}
		return nil, err
	}

	s.emit(ctx, events.EventInsuranceCreated, ins.ID, events.InsuranceChangedPayload{
		Name:        ins.Name,
		Description: ins.Description,
	})
	return ins, nil
}

// Update changes name and description. Keeping the current name is allowed.
func (s *InsuranceService) Update(ctx context.Context, id, name, description string) (*domain.Insurance, error) {
	ins, err := s.insurances.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}

	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if err := validateInsurance(name, description); err != nil {
		return nil, err
	}

	if name != ins.Name {
		if existing, err := s.insurances.GetByName(ctx, name); err == nil && existing.ID != ins.ID {
			return nil, duplicateName(name)
		} else if err != nil && !repository.IsNotFound(err) {
			return nil, err
		}
	}

	updatedAt := s.clock.after(lastChange(ins))
	ins.Name = name
	ins.Description = description
	ins.UpdatedAt = &updatedAt
	if err := s.insurances.Update(ctx, ins); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, duplicateName(name)
		}
		return nil, s.mapNotFound(err, id)
	}

	s.emit(ctx, events.EventInsuranceUpdated, ins.ID, events.InsuranceChangedPayload{
		Name:        ins.Name,
		Description: ins.Description,
	})
	return ins, nil
}

// ToggleActive flips the active flag in one atomic store operation.
func (s *InsuranceService) ToggleActive(ctx context.Context, id string) (*domain.Insurance, error) {
	current, err := s.insurances.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}

	ins, err := s.insurances.ToggleActive(ctx, id, s.clock.after(lastChange(current)))
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}

	s.emit(ctx, events.EventInsuranceStatusChanged, ins.ID, events.InsuranceStatusChangedPayload{
		Name:     ins.Name,
		IsActive: ins.IsActive,
	})
	return ins, nil
}

// Delete removes a product that no application references.
func (s *InsuranceService) Delete(ctx context.Context, id string) error {
	ins, err := s.insurances.GetByID(ctx, id)
	if err != nil {
		return s.mapNotFound(err, id)
	}

	count, err := s.applications.CountByInsurance(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return hasApplications(id, count)
	}

	if err := s.insurances.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHasApplications) {
			return hasApplications(id, count)
		}
		return s.mapNotFound(err, id)
	}

	s.emit(ctx, events.EventInsuranceDeleted, id, events.InsuranceDeletedPayload{Name: ins.Name})
	return nil
}

func (s *InsuranceService) emit(ctx context.Context, eventType events.EventType, insuranceID string, payload interface{}) {
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        eventType,
		InsuranceID: insuranceID,
		Actor:       events.ActorFromContext(ctx),
		Timestamp:   s.clock.now(),
		Payload:     payload,
	})
}

func (s *InsuranceService) mapNotFound(err error, id string) error {
	if repository.IsNotFound(err) {
		return notFound("insurance", KeyInsuranceNotFound, id)
	}
	return err
}

func validateInsurance(name, description string) error {
	if name == "" {
		return validation("name is required", KeyInsuranceNameRequired, map[string]any{"field": "name"})
	}
	if utf8.RuneCountInString(name) > domain.InsuranceNameMaxLen {
		return validation("name is too long", KeyInsuranceNameTooLong,
			map[string]any{"field": "name", "max": domain.InsuranceNameMaxLen})
	}
	if utf8.RuneCountInString(description) > domain.InsuranceDescriptionMaxLen {
		return validation("description is too long", KeyInsuranceDescTooLong,
			map[string]any{"field": "description", "max": domain.InsuranceDescriptionMaxLen})
	}
	return nil
}

func duplicateName(name string) error {
	return apperrors.NewConflict("an insurance with this name already exists", map[string]any{"name": name}).
		WithKey(KeyInsuranceDuplicateName)
}

func hasApplications(id string, count int) error {
	return apperrors.NewConflict("insurance has applications and cannot be deleted",
		map[string]any{"id": id, "applications": count}).WithKey(KeyInsuranceHasApplications)
}

// lastChange is the timestamp a new UpdatedAt must exceed.
func lastChange(ins *domain.Insurance) *time.Time {
	if ins.UpdatedAt != nil {
		return ins.UpdatedAt
	}
	return &ins.CreatedAt
}
