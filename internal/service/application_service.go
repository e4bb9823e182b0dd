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
	"github.com/spec-kit/insurance-service/internal/observability"
	"github.com/spec-kit/insurance-service/internal/repository"
	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

// DateLayout is the wire format of a selected date.
const DateLayout = "2006-01-02"

// ApplicationService handles public application intake.
type ApplicationService struct {
	applications repository.ApplicationRepository
	insurances   repository.InsuranceRepository
	dispatcher   events.Dispatcher
	metrics      *observability.Metrics
	logger       *zap.Logger
	clock        Clock
	location     *time.Location
}

// ApplicationDependencies bundles collaborators for intake.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	InsuranceRepo   repository.InsuranceRepository
	Dispatcher      events.Dispatcher
	Metrics         *observability.Metrics
	Logger          *zap.Logger
	Clock           Clock
	// Location decides which calendar day "today" is.
	Location *time.Location
}

// NewApplicationService builds the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		insurances:   deps.InsuranceRepo,
		dispatcher:   deps.Dispatcher,
		metrics:      deps.Metrics,
		logger:       logger,
		clock:        deps.Clock,
		location:     loc,
	}
}

// Submit records an application for an active product on today or a later date.
func (s *ApplicationService) Submit(ctx context.Context, insuranceID string, selectedDate time.Time, phone string) (*domain.ApplicationView, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, validation("phone is required", KeyApplicationPhoneRequired, map[string]any{"field": "phone"})
	}
	if utf8.RuneCountInString(phone) > domain.PhoneMaxLen {
		return nil, validation("phone is too long", KeyApplicationPhoneTooLong,
			map[string]any{"field": "phone", "max": domain.PhoneMaxLen})
	}
	if selectedDate.IsZero() {
		return nil, validation("selected date is required", KeyApplicationDateRequired, map[string]any{"field": "selectedDate"})
	}

	now := s.clock.now()
	selected := CalendarDate(selectedDate, s.location)
	today := CalendarDate(now, s.location)
	if selected.Before(today) {
		return nil, validation("selected date cannot be in the past", KeyApplicationDateInPast,
			map[string]any{"field": "selectedDate", "today": today.Format(DateLayout)})
	}

	ins, err := s.insurances.GetByID(ctx, insuranceID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("insurance", KeyApplicationInsuranceUnknown, insuranceID)
		}
		return nil, err
	}
	if !ins.IsActive {
		return nil, inactiveInsurance(insuranceID)
	}

	app := &domain.Application{
		InsuranceID:  ins.ID,
		SelectedDate: selected,
		Phone:        phone,
		CreatedAt:    now,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrInsuranceUnavailable) {
			return nil, inactiveInsurance(insuranceID)
		}
		return nil, err
	}

	s.metrics.ApplicationSubmitted()
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventApplicationSubmitted,
		InsuranceID: ins.ID,
		Actor:       events.ActorFromContext(ctx),
		Timestamp:   now,
		Payload: events.ApplicationSubmittedPayload{
			ApplicationID: app.ID,
			InsuranceName: ins.Name,
			SelectedDate:  app.SelectedDate,
			Phone:         app.Phone,
		},
	})

	return &domain.ApplicationView{Application: *app, InsuranceName: ins.Name}, nil
}

// GetByID returns one application with its product name.
func (s *ApplicationService) GetByID(ctx context.Context, id string) (*domain.ApplicationView, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("application", KeyApplicationNotFound, id)
		}
		return nil, err
	}

	view := &domain.ApplicationView{Application: *app}
	ins, err := s.insurances.GetByID(ctx, app.InsuranceID)
	if err != nil {
		s.logger.Warn("insurance name lookup failed",
			zap.String("application_id", app.ID),
			zap.String("insurance_id", app.InsuranceID),
			zap.Error(err))
		return view, nil
	}
	view.InsuranceName = ins.Name
	return view, nil
}

// ListAll returns every application, newest first.
func (s *ApplicationService) ListAll(ctx context.Context) ([]domain.ApplicationView, error) {
	apps, err := s.applications.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(apps, resolveNames(ctx, s.insurances, s.logger)), nil
}

// ListByInsurance returns the applications for one product, newest first.
// An unknown product yields an empty list.
func (s *ApplicationService) ListByInsurance(ctx context.Context, insuranceID string) ([]domain.ApplicationView, error) {
	apps, err := s.applications.ListByInsurance(ctx, insuranceID)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return []domain.ApplicationView{}, nil
	}
	return toViews(apps, resolveNames(ctx, s.insurances, s.logger)), nil
}

// ParseSelectedDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the calendar date in loc.
func ParseSelectedDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(DateLayout, raw, loc); err == nil {
		return CalendarDate(t, loc), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return CalendarDate(t, loc), nil
}

// CalendarDate returns the day t falls on in loc, as midnight UTC.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func inactiveInsurance(id string) error {
	return apperrors.NewValidationError("selected insurance is not active", map[string]any{"insuranceId": id}).
		WithKey(KeyApplicationInsuranceInactive)
}

// resolveNames loads product names for display. Failures leave names empty.
func resolveNames(ctx context.Context, insurances repository.InsuranceRepository, logger *zap.Logger) map[string]string {
	list, err := insurances.ListAll(ctx)
	if err != nil {
		logger.Warn("insurance name resolution failed", zap.Error(err))
		return map[string]string{}
	}
	names := make(map[string]string, len(list))
	for _, ins := range list {
		names[ins.ID] = ins.Name
	}
	return names
}

func toViews(apps []domain.Application, names map[string]string) []domain.ApplicationView {
	views := make([]domain.ApplicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, domain.ApplicationView{Application: app, InsuranceName: names[app.InsuranceID]})
	}
	return views
}
