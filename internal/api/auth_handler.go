package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/api/shared"
	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/service/auth"
	"github.com/yolo-life/yolo-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Validation error: "+err.Error())
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, req.Mobile, req.Password)
	if err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Invalid user data: "+err.Error())
		return
	}
	user.FullName = req.FullName

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if store.IsDuplicateError(err) {
			RespondServiceError(w, r, err)
			return
		}
		slog.Error("failed to create user", "error", err, "username", req.Username)
		shared.RespondError(w, r, http.StatusInternalServerError, shared.CodeInternal, "Failed to create user")
		return
	}

	h.respondWithTokens(w, r, user.ID, http.StatusCreated)
}

// Login handles POST /api/auth/login. The identifier may be a username,
// email or mobile number; all failures look identical to the caller.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Validation error: "+err.Error())
		return
	}

	user, err := h.userStore.GetByIdentifier(r.Context(), req.Identifier)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondServiceError(w, r, auth.ErrInvalidCredentials)
			return
		}
		slog.Error("failed to get user by identifier", "error", err)
		shared.RespondError(w, r, http.StatusInternalServerError, shared.CodeInternal, "Failed to authenticate user")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		RespondServiceError(w, r, auth.ErrInvalidCredentials)
		return
	}

	if !user.IsActive {
		RespondServiceError(w, r, auth.ErrAccountDisabled)
		return
	}

	h.respondWithTokens(w, r, user.ID, http.StatusOK)
}

// Refresh handles POST /api/auth/refresh, exchanging a valid refresh
// token for a new token pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Validation error: "+err.Error())
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	// The account may have been disabled since the token was issued.
	user, err := h.userStore.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondServiceError(w, r, auth.ErrInvalidRefreshToken)
			return
		}
		slog.Error("failed to load user during refresh", "error", err, "user_id", claims.UserID)
		shared.RespondError(w, r, http.StatusInternalServerError, shared.CodeInternal, "Failed to refresh tokens")
		return
	}
	if !user.IsActive {
		RespondServiceError(w, r, auth.ErrAccountDisabled)
		return
	}

	h.respondWithTokens(w, r, user.ID, http.StatusOK)
}

// respondWithTokens issues a fresh access/refresh pair for the user.
func (h *AuthHandler) respondWithTokens(w http.ResponseWriter, r *http.Request, userID uuid.UUID, status int) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		slog.Error("failed to generate access token", "error", err, "user_id", userID)
		shared.RespondError(w, r, http.StatusInternalServerError, shared.CodeInternal, "Failed to generate authentication token")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), userID)
	if err != nil {
		slog.Error("failed to generate refresh token", "error", err, "user_id", userID)
		shared.RespondError(w, r, http.StatusInternalServerError, shared.CodeInternal, "Failed to generate authentication token")
		return
	}

	shared.RespondSuccess(w, r, status, AuthResponse{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	})
}
