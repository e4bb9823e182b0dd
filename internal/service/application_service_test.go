package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/insurance-service/internal/events"
	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

func TestSubmitApplication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kasko, err := f.insurances.Create(ctx, "Kasko Sigortası", "")
	require.NoError(t, err)

	view, err := f.applications.Submit(ctx, kasko.ID, f.today(), " 5551234567 ")
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Kasko Sigortası", view.InsuranceName)
	assert.Equal(t, "5551234567", view.Phone)
	assert.Equal(t, "2026-05-10", view.SelectedDate.Format(DateLayout))
	assert.Equal(t, fixtureNow, view.CreatedAt)

	stored, err := f.applications.GetByID(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Phone, stored.Phone)
	assert.Equal(t, "Kasko Sigortası", stored.InsuranceName)

	last := f.events()[len(f.events())-1]
	assert.Equal(t, events.EventApplicationSubmitted, last.Type)
	assert.Equal(t, events.ActorPublic, last.Actor.Kind)
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kasko, err := f.insurances.Create(ctx, "Kasko", "")
	require.NoError(t, err)
	yesterday := f.today().AddDate(0, 0, -1)

	cases := []struct {
		name  string
		id    string
		date  time.Time
		phone string
		code  string
		key   string
	}{
		{"blank phone", kasko.ID, f.today(), "  ", apperrors.CodeValidation, KeyApplicationPhoneRequired},
		{"long phone", kasko.ID, f.today(), strings.Repeat("5", 16), apperrors.CodeValidation, KeyApplicationPhoneTooLong},
		{"missing date", kasko.ID, time.Time{}, "555", apperrors.CodeValidation, KeyApplicationDateRequired},
		{"past date", kasko.ID, yesterday, "555", apperrors.CodeValidation, KeyApplicationDateInPast},
		{"unknown insurance", "missing", f.today(), "555", apperrors.CodeNotFound, KeyApplicationInsuranceUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.applications.Submit(ctx, tc.id, tc.date, tc.phone)
			requireDomainError(t, err, tc.code, tc.key)
		})
	}

	all, err := f.applications.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSubmitToInactiveInsurance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kasko, err := f.insurances.Create(ctx, "Kasko", "")
	require.NoError(t, err)
	_, err = f.insurances.ToggleActive(ctx, kasko.ID)
	require.NoError(t, err)

	_, err = f.applications.Submit(ctx, kasko.ID, f.today().AddDate(0, 0, 3), "555")
	requireDomainError(t, err, apperrors.CodeValidation, KeyApplicationInsuranceInactive)

	apps, err := f.applications.ListByInsurance(ctx, kasko.ID)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestTodayFollowsBusinessTimeZone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kasko, err := f.insurances.Create(ctx, "Kasko", "")
	require.NoError(t, err)

	// 22:30 UTC on the 10th is already the 11th in Istanbul.
	f.clock.Set(time.Date(2026, 5, 10, 22, 30, 0, 0, time.UTC))

	utcToday := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	_, err = f.applications.Submit(ctx, kasko.ID, utcToday, "555")
	requireDomainError(t, err, apperrors.CodeValidation, KeyApplicationDateInPast)

	_, err = f.applications.Submit(ctx, kasko.ID, utcToday.AddDate(0, 0, 1), "555")
	assert.NoError(t, err)
}

func TestListingsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	kasko, err := f.insurances.Create(ctx, "Kasko", "")
	require.NoError(t, err)
	konut, err := f.insurances.Create(ctx, "Konut", "")
	require.NoError(t, err)

	for i, id := range []string{kasko.ID, konut.ID, kasko.ID} {
		f.clock.Set(fixtureNow.Add(time.Duration(i) * time.Minute))
		_, err := f.applications.Submit(ctx, id, f.today(), "555")
		require.NoError(t, err)
	}

	all, err := f.applications.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt))
	assert.True(t, all[1].CreatedAt.After(all[2].CreatedAt))
	assert.Equal(t, "Konut", all[1].InsuranceName)

	byKasko, err := f.applications.ListByInsurance(ctx, kasko.ID)
	require.NoError(t, err)
	require.Len(t, byKasko, 2)
	assert.Equal(t, "Kasko", byKasko[0].InsuranceName)

	none, err := f.applications.ListByInsurance(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = f.applications.GetByID(ctx, "missing")
	requireDomainError(t, err, apperrors.CodeNotFound, KeyApplicationNotFound)
}

func TestParseSelectedDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	got, err := ParseSelectedDate("2026-06-01", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), got)

	// Midnight in Istanbul serialized as UTC still names June 1st.
	got, err = ParseSelectedDate("2026-05-31T21:00:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseSelectedDate("01/06/2026", loc)
	assert.Error(t, err)
}
