// Copyright (c) 2026 Presensya. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/presensya/internal/platform/apperr"
)

/*
TestConstructors verifies the status and code mapping of the error taxonomy.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Employee"), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", apperr.Unauthorized("bad password"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", apperr.Forbidden("admins only"), http.StatusForbidden, "FORBIDDEN"},
		{"conflict", apperr.Conflict("already clocked in"), http.StatusConflict, "CONFLICT"},
		{"validation", apperr.ValidationError("bad input"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"rate_limited", apperr.RateLimited("slow down"), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"unprocessable", apperr.Unprocessable("no open shift"), http.StatusUnprocessableEntity, "UNPROCESSABLE"},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"service_unavailable", apperr.ServiceUnavailable("redis down"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestNotFound_MessageIncludesResource(t *testing.T) {
	assert.Equal(t, "Employee not found", apperr.NotFound("Employee").Error())
}

/*
TestWithCode verifies that refining the code clones the error instead of
mutating the original.
*/
func TestWithCode(t *testing.T) {
	base := apperr.Unauthorized("OTP expired")
	refined := base.WithCode("OTP_EXPIRED")

	assert.Equal(t, "OTP_EXPIRED", refined.Code)
	assert.Equal(t, base.HTTPStatus, refined.HTTPStatus)
	assert.Equal(t, base.Message, refined.Message)

	// The original is untouched.
	assert.Equal(t, "UNAUTHORIZED", base.Code)
}

func TestHelpers(t *testing.T) {
	cause := errors.New("pq: connection refused")
	wrapped := fmt.Errorf("loading user: %w", apperr.Internal(cause))

	t.Run("is_app_error_through_chain", func(t *testing.T) {
		assert.True(t, apperr.IsAppError(wrapped))
		assert.False(t, apperr.IsAppError(cause))
	})

	t.Run("as_extracts_from_chain", func(t *testing.T) {
		ae := apperr.As(wrapped)
		require.NotNil(t, ae)
		assert.Equal(t, "INTERNAL_ERROR", ae.Code)
		assert.Nil(t, apperr.As(errors.New("plain")))
	})

	t.Run("has_code", func(t *testing.T) {
		err := apperr.Unauthorized("wrong code").WithCode("INVALID_OTP")
		assert.True(t, apperr.HasCode(err, "INVALID_OTP"))
		assert.False(t, apperr.HasCode(err, "OTP_EXPIRED"))
		assert.False(t, apperr.HasCode(nil, "INVALID_OTP"))
	})

	t.Run("unwrap_reaches_cause", func(t *testing.T) {
		assert.ErrorIs(t, apperr.Internal(cause), cause)
	})
}

func TestWrapf(t *testing.T) {
	assert.NoError(t, apperr.Wrapf(nil, "context"))

	inner := errors.New("inner")
	wrapped := apperr.Wrapf(inner, "loading record %s", "rec-1")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, inner)
	assert.Contains(t, wrapped.Error(), "rec-1")
}
