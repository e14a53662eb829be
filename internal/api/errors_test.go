package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yolo-life/yolo-api/internal/api"
	"github.com/yolo-life/yolo-api/internal/api/shared"
	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/service/auth"
	"github.com/yolo-life/yolo-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"disabled account", auth.ErrAccountDisabled, http.StatusUnauthorized},
		{"expired refresh token", auth.ErrExpiredRefreshToken, http.StatusUnauthorized},
		{"update forbidden", store.ErrUpdateForbidden, http.StatusForbidden},
		{"record not found", store.ErrRecordNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"username exists", store.ErrUsernameExists, http.StatusConflict},
		{"user still referenced", store.ErrUserReferenced, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown filter column", store.ErrUnknownColumn, http.StatusBadRequest},
		{"domain validation", domain.ErrStarOutOfRange, http.StatusBadRequest},
		{"wrapped sentinel", fmt.Errorf("loading record: %w", store.ErrRecordNotFound), http.StatusNotFound},
		{"unclassified", errors.New("disk on fire"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", auth.ErrInvalidCredentials, shared.CodeUnauthorized},
		{"forbidden shares the unauthorized code", store.ErrUpdateForbidden, shared.CodeUnauthorized},
		{"not found", store.ErrRecordNotFound, shared.CodeNotFound},
		{"conflict", store.ErrDuplicate, shared.CodeConflict},
		{"validation", domain.ErrEmptyTitle, shared.CodeValidation},
		{"internal", errors.New("boom"), shared.CodeInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, api.MapErrorToCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("internal details are not leaked", func(t *testing.T) {
		t.Parallel()
		err := errors.New(`dial tcp 10.0.0.5:5432: connect: connection refused`)
		assert.Equal(t, "An unexpected error occurred", api.GetSafeErrorMessage(err))
	})

	t.Run("validation failures surface the field detail", func(t *testing.T) {
		t.Parallel()
		msg := api.GetSafeErrorMessage(domain.ErrStarOutOfRange)
		assert.Contains(t, msg, "star rating out of range")
	})

	t.Run("known sentinels get fixed messages", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Invalid credentials", api.GetSafeErrorMessage(auth.ErrInvalidCredentials))
		assert.Equal(t, "Username already exists", api.GetSafeErrorMessage(store.ErrUsernameExists))
		assert.Equal(t, "Record not found", api.GetSafeErrorMessage(store.ErrRecordNotFound))
		assert.Equal(t, "Not enough permissions", api.GetSafeErrorMessage(store.ErrUpdateForbidden))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "An unexpected error occurred", api.GetSafeErrorMessage(nil))
	})
}
