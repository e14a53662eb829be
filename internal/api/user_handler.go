package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/api/shared"
	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/store"
)

// UserHandler serves the authenticated user's profile endpoints.
type UserHandler struct {
	userStore store.UserStore
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userStore store.UserStore) *UserHandler {
	return &UserHandler{userStore: userStore}
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondError(w, r, http.StatusUnauthorized, shared.CodeUnauthorized, "Authorization required")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, NewUserResponse(user))
}

// UpdateMe handles PUT /api/users/me. The body is a sparse patch; only
// supplied fields change. Username and superuser status are not
// client-editable.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondError(w, r, http.StatusUnauthorized, shared.CodeUnauthorized, "Authorization required")
		return
	}

	var patch domain.UserPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Invalid request format")
		return
	}

	user, err := h.userStore.Update(r.Context(), userID, patch)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to update user", "error", err, "user_id", userID)
		}
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, NewUserResponse(user))
}
