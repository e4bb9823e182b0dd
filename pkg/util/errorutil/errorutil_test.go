package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    *DomainError
		code   string
		status int
	}{
		{"validation", NewValidationError("bad", nil), CodeValidation, http.StatusBadRequest},
		{"not found", NewNotFound("insurance", nil), CodeNotFound, http.StatusNotFound},
		{"conflict", NewConflict("dup", nil), CodeConflict, http.StatusConflict},
		{"unauthorized", NewUnauthorized("no"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbidden("no"), CodeForbidden, http.StatusForbidden},
		{"internal", NewInternalError(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.status, tc.err.HTTPStatus)
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFound("insurance", map[string]any{"id": "x"})
	assert.Equal(t, "insurance not found", err.Error())
	assert.Equal(t, "x", err.Details["id"])
}

func TestWithKeyCopies(t *testing.T) {
	base := NewValidationError("bad", nil)
	keyed := base.WithKey("insurance.name_required")

	assert.Empty(t, base.Key)
	assert.Equal(t, "insurance.name_required", keyed.Key)
	assert.Equal(t, base.Message, keyed.Message)
}

func TestIsMatchesCodeAndKey(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConflict("dup", nil).WithKey("insurance.duplicate_name"))

	assert.True(t, errors.Is(err, &DomainError{Code: CodeConflict}))
	assert.True(t, errors.Is(err, &DomainError{Code: CodeConflict, Key: "insurance.duplicate_name"}))
	assert.False(t, errors.Is(err, &DomainError{Code: CodeConflict, Key: "insurance.has_applications"}))
	assert.False(t, errors.Is(err, &DomainError{Code: CodeNotFound}))
}

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	cause := errors.New("db down")
	internal := ToDomainError(cause)
	require.NotNil(t, internal)
	assert.Equal(t, CodeInternal, internal.Code)
	assert.ErrorIs(t, internal, cause)

	original := NewForbidden("nope")
	assert.Same(t, original, ToDomainError(fmt.Errorf("ctx: %w", original)))
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(NewUnauthorized("x"), CodeUnauthorized))
	assert.False(t, IsCode(errors.New("plain"), CodeUnauthorized))
}
