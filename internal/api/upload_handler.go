package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/yolo-life/yolo-api/internal/api/shared"
	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/platform/objectstore"
	"github.com/yolo-life/yolo-api/internal/store"
)

// maxMultipartMemory bounds the in-memory part of multipart parsing;
// larger files spill to disk.
const maxMultipartMemory = 8 << 20

// UploadHandler delegates file uploads to object storage and records
// their metadata. File bytes never touch the database.
type UploadHandler struct {
	objects   *objectstore.Store
	fileStore store.FileStore
}

// NewUploadHandler creates a new UploadHandler with the given dependencies.
func NewUploadHandler(objects *objectstore.Store, fileStore store.FileStore) *UploadHandler {
	return &UploadHandler{
		objects:   objects,
		fileStore: fileStore,
	}
}

// Config handles GET /api/upload/config. It returns a presigned grant
// the client uses to PUT the file straight to the bucket, bypassing
// this server.
func (h *UploadHandler) Config(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	grant, err := h.objects.UploadGrant(r.Context(), q.Get("folder"), q.Get("file_type"), q.Get("filename"))
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to issue upload grant", "error", err)
		}
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, grant)
}

// Upload handles POST /api/upload/files. The multipart "file" part is
// relayed into the bucket and its metadata recorded against the caller.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		shared.RespondError(w, r, http.StatusUnauthorized, shared.CodeUnauthorized, "Authorization required")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, shared.CodeValidation, "Missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	key, err := h.objects.BuildKey(
		r.FormValue("folder"),
		r.FormValue("file_type"),
		header.Filename,
	)
	if err != nil {
		RespondServiceError(w, r, err)
		return
	}

	hasher := sha256.New()
	url, err := h.objects.Upload(
		r.Context(),
		key,
		io.TeeReader(file, hasher),
		header.Size,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			slog.Error("failed to upload file", "error", err, "object_key", key)
		}
		RespondServiceError(w, r, err)
		return
	}

	info := &domain.FileInfo{
		ObjectKey: key,
		Filename:  header.Filename,
		Size:      header.Size,
		Hash:      hex.EncodeToString(hasher.Sum(nil)),
		FileType:  r.FormValue("file_type"),
		URL:       url,
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.fileStore.Create(r.Context(), info); err != nil {
		// The object landed in the bucket; losing the metadata row is a
		// server fault, so clean up and report.
		if cleanupErr := h.objects.Delete(r.Context(), key); cleanupErr != nil &&
			!errors.Is(cleanupErr, store.ErrFileNotFound) {
			slog.Error("failed to remove orphaned object", "error", cleanupErr, "object_key", key)
		}
		slog.Error("failed to record file metadata", "error", err, "object_key", key)
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, info)
}

// ListFiles handles GET /api/upload/files, returning the caller's
// uploads newest first.
func (h *UploadHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		shared.RespondError(w, r, http.StatusUnauthorized, shared.CodeUnauthorized, "Authorization required")
		return
	}

	page, pageNum, pageSize := ParsePage(r)

	files, total, err := h.fileStore.ListByCreator(r.Context(), userID, page)
	if err != nil {
		slog.Error("failed to list files", "error", err, "user_id", userID)
		RespondServiceError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, ListResponse{
		Items:    files,
		Total:    total,
		Page:     pageNum,
		PageSize: pageSize,
	})
}
