package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/store"
)

// Default pagination when the client sends no page parameters.
const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = store.MaxLimit
)

// ParsePage reads page and page_size query parameters and converts them
// to an offset window. Out-of-range values are clamped rather than
// rejected. It returns the window plus the effective page and page_size
// for echoing back in the response.
func ParsePage(r *http.Request) (store.Page, int, int) {
	page := queryInt(r.URL.Query(), "page", defaultPage)
	if page < 1 {
		page = 1
	}

	pageSize := queryInt(r.URL.Query(), "page_size", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return store.Page{Skip: (page - 1) * pageSize, Limit: pageSize}, page, pageSize
}

// PathUUID extracts a UUID path parameter. A malformed value is
// indistinguishable from an absent record, so callers treat the error
// as not found.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, store.ErrRecordNotFound
	}
	return id, nil
}

func queryInt(values url.Values, name string, fallback int) int {
	raw := values.Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// queryFloat parses an optional numeric query parameter; absent or
// malformed values return nil.
func queryFloat(values url.Values, name string) *float64 {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// queryBool parses an optional boolean query parameter; absent or
// malformed values return nil.
func queryBool(values url.Values, name string) *bool {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
