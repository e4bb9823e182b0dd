package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/insurance-service/internal/events"
	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

// Clock supplies the current time. Tests replace it with a fixed or stepping clock.
type Clock func() time.Time

// Message keys rendered by the HTTP layer's locale catalog.
const (
	KeyInsuranceNotFound            = "insurance.not_found"
	KeyInsuranceDuplicateName       = "insurance.duplicate_name"
	KeyInsuranceHasApplications     = "insurance.has_applications"
	KeyInsuranceNameRequired        = "insurance.name_required"
	KeyInsuranceNameTooLong         = "insurance.name_too_long"
	KeyInsuranceDescTooLong         = "insurance.description_too_long"
	KeyApplicationNotFound          = "application.not_found"
	KeyApplicationPhoneRequired     = "application.phone_required"
	KeyApplicationPhoneTooLong      = "application.phone_too_long"
	KeyApplicationDateInPast        = "application.date_in_past"
	KeyApplicationDateRequired      = "application.date_required"
	KeyApplicationInsuranceUnknown  = "application.insurance_not_found"
	KeyApplicationInsuranceInactive = "application.insurance_inactive"
	KeyAdminCredentialsRequired     = "admin.credentials_required"
	KeyAdminInvalidCredentials      = "admin.invalid_credentials"
	KeyAdminNotFound                = "admin.not_found"
	KeyAuthInvalidToken             = "auth.invalid_token"
	KeyReportInvalidSort            = "report.invalid_sort"
	KeyReportInvalidRange           = "report.invalid_range"
)

// now returns the clock reading truncated to the precision the store keeps.
func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC().Truncate(time.Microsecond)
	}
	return c().UTC().Truncate(time.Microsecond)
}

// after returns a timestamp strictly later than prev, using the clock when it is already later.
func (c Clock) after(prev *time.Time) time.Time {
	ts := c.now()
	if prev != nil && !ts.After(*prev) {
		ts = prev.Add(time.Microsecond)
	}
	return ts
}

// publish emits an event and logs handler failures without failing the caller.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}

func notFound(resource, key, id string) *apperrors.DomainError {
	return apperrors.NewNotFound(resource, map[string]any{"id": id}).WithKey(key)
}

func validation(message, key string, details map[string]any) *apperrors.DomainError {
	return apperrors.NewValidationError(message, details).WithKey(key)
}
