package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yolo-life/yolo-api/internal/api/middleware"
	"github.com/yolo-life/yolo-api/internal/api/shared"
	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/mocks"
	"github.com/yolo-life/yolo-api/internal/service/auth"
)

func activeUser() *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "$2a$10$hash",
		IsActive:       true,
	}
}

// serveProtected runs a request through the middleware and reports what
// the downstream handler observed in the context.
func serveProtected(m *middleware.AuthMiddleware, authHeader string) (*httptest.ResponseRecorder, *http.Request) {
	var seen *http.Request
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, seen
}

func errorMsg(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Code string `json:"code"`
		Msg  string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, shared.CodeUnauthorized, env.Code)
	return env.Msg
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid token reaches the handler with user context", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		user := activeUser()
		users.Add(user)
		m := middleware.NewAuthMiddleware(&mocks.MockJWTService{}, users)

		rr, seen := serveProtected(m, "Bearer access-"+user.ID.String())

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, seen)

		gotID, ok := middleware.GetUserID(seen)
		require.True(t, ok)
		assert.Equal(t, user.ID, gotID)

		gotUser, ok := seen.Context().Value(shared.UserContextKey).(*domain.User)
		require.True(t, ok)
		assert.Equal(t, user.Username, gotUser.Username)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		m := middleware.NewAuthMiddleware(&mocks.MockJWTService{}, mocks.NewMockUserStore())

		rr, seen := serveProtected(m, "")
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Authorization header required", errorMsg(t, rr))
		assert.Nil(t, seen)
	})

	t.Run("malformed header", func(t *testing.T) {
		t.Parallel()
		m := middleware.NewAuthMiddleware(&mocks.MockJWTService{}, mocks.NewMockUserStore())

		for _, header := range []string{"access-token", "Basic dXNlcjpwYXNz", "Bearer"} {
			rr, _ := serveProtected(m, header)
			assert.Equal(t, http.StatusUnauthorized, rr.Code, "header %q", header)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		jwtSvc := &mocks.MockJWTService{
			ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrExpiredToken
			},
		}
		m := middleware.NewAuthMiddleware(jwtSvc, mocks.NewMockUserStore())

		rr, _ := serveProtected(m, "Bearer whatever")
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Token expired", errorMsg(t, rr))
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()
		m := middleware.NewAuthMiddleware(&mocks.MockJWTService{}, mocks.NewMockUserStore())

		rr, _ := serveProtected(m, "Bearer garbage")
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid token", errorMsg(t, rr))
	})

	t.Run("token for deleted user", func(t *testing.T) {
		t.Parallel()
		m := middleware.NewAuthMiddleware(&mocks.MockJWTService{}, mocks.NewMockUserStore())

		rr, _ := serveProtected(m, "Bearer access-"+uuid.NewString())
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid token", errorMsg(t, rr))
	})

	t.Run("token for disabled user", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		user := activeUser()
		user.IsActive = false
		users.Add(user)
		m := middleware.NewAuthMiddleware(&mocks.MockJWTService{}, users)

		rr, _ := serveProtected(m, "Bearer access-"+user.ID.String())
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Account is disabled", errorMsg(t, rr))
	})
}
