package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/domain"
)

// FileStore records metadata for objects whose bytes live in object
// storage. The backend never holds file content, only the bookkeeping.
type FileStore interface {
	// Create saves a file metadata row.
	// Returns ErrDuplicate when the object key is already recorded.
	Create(ctx context.Context, file *domain.FileInfo) error

	// GetByKey retrieves file metadata by object key.
	// Returns ErrFileNotFound if no row matches.
	GetByKey(ctx context.Context, objectKey string) (*domain.FileInfo, error)

	// ListByCreator returns a page of files uploaded by the given user,
	// newest first, along with the total count.
	ListByCreator(ctx context.Context, creatorID uuid.UUID, page Page) ([]*domain.FileInfo, int64, error)
}
