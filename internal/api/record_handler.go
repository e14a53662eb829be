package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/api/shared"
	"github.com/yolo-life/yolo-api/internal/store"
)

// FilterParser extracts a resource's search filters from query
// parameters. Each resource wires its own parser; unknown parameters
// are simply ignored.
type FilterParser func(values url.Values) store.Filters

// RecordHandler serves the CRUD and search endpoints for one record
// type. All four lifestyle resources share this implementation and
// differ only in their store, filter parser and name.
type RecordHandler[R any, P any] struct {
	records      store.RecordStore[R, P]
	parseFilters FilterParser
	name         string
}

// NewRecordHandler creates a handler for one resource.
func NewRecordHandler[R any, P any](
	records store.RecordStore[R, P],
	parseFilters FilterParser,
	name string,
) *RecordHandler[R, P] {
	return &RecordHandler[R, P]{
		records:      records,
		parseFilters: parseFilters,
		name:         name,
	}
}

// requestUserID pulls the authenticated user's ID out of the context
// placed there by the auth middleware.
func requestUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok && userID != uuid.Nil
}

// Create handles POST /api/{resource}.
func (h *RecordHandler[R, P]) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		shared.RespondError(w, r, http.StatusUnauthorized, shared.CodeUnauthorized, "Authorization required")
		return
	}

	var record R
	if err := shared.DecodeJSON(r, &record); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Invalid request format")
		return
	}

	if err := h.records.Create(r.Context(), &record, userID); err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to create record", "error", err, "resource", h.name)
		}
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, record)
}

// Get handles GET /api/{resource}/{id}.
func (h *RecordHandler[R, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	record, err := h.records.GetByID(r.Context(), id)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to get record", "error", err, "resource", h.name)
		}
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, record)
}

// List handles GET /api/{resource}.
func (h *RecordHandler[R, P]) List(w http.ResponseWriter, r *http.Request) {
	page, pageNum, pageSize := ParsePage(r)

	records, total, err := h.records.List(r.Context(), page)
	if err != nil {
		slog.Error("failed to list records", "error", err, "resource", h.name)
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, ListResponse{
		Items:    records,
		Total:    total,
		Page:     pageNum,
		PageSize: pageSize,
	})
}

// Search handles GET /api/{resource}/search. The item list and the
// total come from the same filter set, so the count always matches the
// pages a client walks through.
func (h *RecordHandler[R, P]) Search(w http.ResponseWriter, r *http.Request) {
	page, pageNum, pageSize := ParsePage(r)
	filters := h.parseFilters(r.URL.Query())

	records, err := h.records.Search(r.Context(), filters, page)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to search records", "error", err, "resource", h.name)
		}
		RespondServiceError(w, r, err)
		return
	}

	total, err := h.records.SearchCount(r.Context(), filters)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to count records", "error", err, "resource", h.name)
		}
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, ListResponse{
		Items:    records,
		Total:    total,
		Page:     pageNum,
		PageSize: pageSize,
	})
}

// Update handles PUT /api/{resource}/{id} with a sparse patch body.
func (h *RecordHandler[R, P]) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		shared.RespondError(w, r, http.StatusUnauthorized, shared.CodeUnauthorized, "Authorization required")
		return
	}

	id, err := PathUUID(r, "id")
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	var patch P
	if err := shared.DecodeJSON(r, &patch); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Invalid request format")
		return
	}

	record, err := h.records.Update(r.Context(), id, patch, userID)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to update record", "error", err, "resource", h.name)
		}
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, record)
}

// Delete handles DELETE /api/{resource}/{id}. Deleting a record that is
// already gone reports not found rather than success.
func (h *RecordHandler[R, P]) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		shared.RespondError(w, r, http.StatusUnauthorized, shared.CodeUnauthorized, "Authorization required")
		return
	}

	id, err := PathUUID(r, "id")
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	deleted, err := h.records.Delete(r.Context(), id, userID)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to delete record", "error", err, "resource", h.name)
		}
		RespondServiceError(w, r, err)
		return
	}
	if !deleted {
		RespondServiceError(w, r, store.ErrRecordNotFound)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, map[string]string{"id": id.String()})
}
