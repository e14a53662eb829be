package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yolo-life/yolo-api/internal/api"
	"github.com/yolo-life/yolo-api/internal/api/shared"
	"github.com/yolo-life/yolo-api/internal/config"
	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/mocks"
	"github.com/yolo-life/yolo-api/internal/platform/objectstore"
)

// With the region pinned, presigning is pure request signing and never
// dials out, so the grant endpoint is testable against a placeholder
// endpoint.
func newUploadHandler(t *testing.T, files *mocks.MockFileStore) *api.UploadHandler {
	t.Helper()
	objects, err := objectstore.New(config.StorageConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "uploads",
	}, nil)
	require.NoError(t, err)
	return api.NewUploadHandler(objects, files)
}

func authedRequest(method, target string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func TestUploadHandlerConfig(t *testing.T) {
	t.Parallel()

	handler := newUploadHandler(t, &mocks.MockFileStore{})

	t.Run("issues a presigned grant", func(t *testing.T) {
		t.Parallel()
		req := authedRequest(http.MethodGet, "/api/upload/config?folder=images&file_type=avatar&filename=me.png", uuid.New())
		rr := httptest.NewRecorder()
		handler.Config(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		env := decodeEnvelope(t, rr)

		var grant objectstore.UploadGrant
		require.NoError(t, json.Unmarshal(env.Data, &grant))
		assert.Equal(t, "PUT", grant.Method)
		assert.Contains(t, grant.Key, "images/avatar/")
		assert.Contains(t, grant.UploadURL, grant.Key)
		assert.Contains(t, grant.PublicURL, grant.Key)
		assert.True(t, grant.ExpiresAt.After(time.Now()))
	})

	t.Run("rejects a traversal folder", func(t *testing.T) {
		t.Parallel()
		req := authedRequest(http.MethodGet, "/api/upload/config?folder=..%2Fetc&filename=x.png", uuid.New())
		rr := httptest.NewRecorder()
		handler.Config(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, shared.CodeValidation, decodeEnvelope(t, rr).Code)
	})
}

func TestUploadHandlerListFiles(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	files := &mocks.MockFileStore{}
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		require.NoError(t, files.Create(context.Background(), &domain.FileInfo{
			ID:        uuid.New(),
			ObjectKey: "images/" + name,
			Filename:  name,
			Size:      100,
			CreatedBy: userID,
		}))
	}
	// Another user's upload should not appear.
	require.NoError(t, files.Create(context.Background(), &domain.FileInfo{
		ID:        uuid.New(),
		ObjectKey: "images/other.png",
		Filename:  "other.png",
		Size:      100,
		CreatedBy: uuid.New(),
	}))

	handler := newUploadHandler(t, files)

	t.Run("lists only the caller's files", func(t *testing.T) {
		t.Parallel()
		req := authedRequest(http.MethodGet, "/api/upload/files", userID)
		rr := httptest.NewRecorder()
		handler.ListFiles(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var list struct {
			Items []domain.FileInfo `json:"items"`
			Total int64             `json:"total"`
		}
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &list))
		assert.Len(t, list.Items, 3)
		assert.EqualValues(t, 3, list.Total)
	})

	t.Run("unauthenticated request rejected", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/upload/files", nil)
		rr := httptest.NewRecorder()
		handler.ListFiles(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
