package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/insurance-service/internal/auth"
	"github.com/spec-kit/insurance-service/internal/events"
	"github.com/spec-kit/insurance-service/internal/repository/memory"
	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fixture struct {
	repos        memory.Repositories
	clock        *fakeClock
	loc          *time.Location
	mu           sync.Mutex
	published    []events.Event
	insurances   *InsuranceService
	applications *ApplicationService
	admins       *AdminService
	reports      *ReportService
	tokens       *auth.TokenManager
}

// 2026-05-10 12:00 in Istanbul.
var fixtureNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	f := &fixture{
		repos: memory.NewRepositories(),
		clock: &fakeClock{now: fixtureNow},
		loc:   loc,
	}

	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range events.AllEventTypes {
		dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.published = append(f.published, e)
			return nil
		})
	}

	clock := Clock(f.clock.Now)
	f.tokens = auth.NewTokenManager("test-secret", "insurance-service", "insurance-admin", 7*24*time.Hour).WithClock(f.clock.Now)
	f.insurances = NewInsuranceService(InsuranceDependencies{
		InsuranceRepo:   f.repos.Insurances,
		ApplicationRepo: f.repos.Applications,
		Dispatcher:      dispatcher,
		Clock:           clock,
	})
	f.applications = NewApplicationService(ApplicationDependencies{
		ApplicationRepo: f.repos.Applications,
		InsuranceRepo:   f.repos.Insurances,
		Dispatcher:      dispatcher,
		Clock:           clock,
		Location:        loc,
	})
	f.admins = NewAdminService(AdminDependencies{
		AdminRepo:  f.repos.Admins,
		Tokens:     f.tokens,
		BcryptCost: bcrypt.MinCost,
		Clock:      clock,
	})
	f.reports = NewReportService(ReportDependencies{
		ApplicationRepo: f.repos.Applications,
		InsuranceRepo:   f.repos.Insurances,
		Clock:           clock,
		Location:        loc,
	})
	return f
}

func (f *fixture) events() []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.Event{}, f.published...)
}

func (f *fixture) today() time.Time {
	return CalendarDate(f.clock.Now(), f.loc)
}

func requireDomainError(t *testing.T, err error, code, key string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T: %v", err, err)
	require.Equal(t, code, domainErr.Code)
	if key != "" {
		require.Equal(t, key, domainErr.Key)
	}
}
