package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/insurance-service/internal/domain"
	apperrors "github.com/spec-kit/insurance-service/pkg/util/errorutil"
)

func seedAdmin(t *testing.T, f *fixture) {
	t.Helper()
	created, err := f.admins.EnsureSeedAccount(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.True(t, created)
}

func TestLoginWithSeedCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedAdmin(t, f)

	result, err := f.admins.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, fixtureNow.Add(7*24*time.Hour), result.ExpiresAt)
	require.NotNil(t, result.Admin.LastLoginAt)

	stored, err := f.admins.GetProfile(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
	assert.Equal(t, *result.Admin.LastLoginAt, *stored.LastLoginAt)

	assert.True(t, f.admins.Validate(ctx, result.Token))
	principal, err := f.admins.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Username)
	assert.True(t, principal.Admin)
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedAdmin(t, f)

	_, err := f.admins.Login(ctx, "admin", "wrong")
	requireDomainError(t, err, apperrors.CodeUnauthorized, KeyAdminInvalidCredentials)

	stored, err := f.admins.GetProfile(ctx, "admin")
	require.NoError(t, err)
	assert.Nil(t, stored.LastLoginAt, "failed login leaves last login untouched")

	_, err = f.admins.Login(ctx, "nobody", "admin123")
	requireDomainError(t, err, apperrors.CodeUnauthorized, KeyAdminInvalidCredentials)

	_, err = f.admins.Login(ctx, " ", "admin123")
	requireDomainError(t, err, apperrors.CodeValidation, KeyAdminCredentialsRequired)
	_, err = f.admins.Login(ctx, "admin", "")
	requireDomainError(t, err, apperrors.CodeValidation, KeyAdminCredentialsRequired)
}

func TestValidateRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedAdmin(t, f)

	assert.False(t, f.admins.Validate(ctx, ""))
	assert.False(t, f.admins.Validate(ctx, "garbage"))

	orphan, _, err := f.tokens.GenerateToken(&domain.Admin{ID: "x", Username: "ghost"})
	require.NoError(t, err)
	assert.False(t, f.admins.Validate(ctx, orphan), "token for a missing account")

	admin, err := f.admins.GetProfile(ctx, "admin")
	require.NoError(t, err)
	renamed, _, err := f.tokens.GenerateToken(&domain.Admin{ID: admin.ID, Username: "someone-else"})
	require.NoError(t, err)
	assert.False(t, f.admins.Validate(ctx, renamed), "username does not match the account id")
	mismatched, _, err := f.tokens.GenerateToken(&domain.Admin{ID: "00000000-0000-0000-0000-000000000000", Username: "admin"})
	require.NoError(t, err)
	assert.False(t, f.admins.Validate(ctx, mismatched), "account id does not exist")

	result, err := f.admins.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	f.clock.Set(result.ExpiresAt)
	assert.False(t, f.admins.Validate(ctx, result.Token), "expired token")

	_, err = f.admins.Authenticate(ctx, result.Token)
	requireDomainError(t, err, apperrors.CodeUnauthorized, KeyAuthInvalidToken)
}

func TestEnsureSeedAccountIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedAdmin(t, f)

	created, err := f.admins.EnsureSeedAccount(ctx, "admin", "different")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = f.admins.Login(ctx, "admin", "admin123")
	assert.NoError(t, err, "existing password is kept")

	created, err = f.admins.EnsureSeedAccount(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestGetProfileUnknown(t *testing.T) {
	f := newFixture(t)
	_, err := f.admins.GetProfile(context.Background(), "nobody")
	requireDomainError(t, err, apperrors.CodeNotFound, KeyAdminNotFound)
}
