package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation errors for FileInfo.
var (
	ErrEmptyObjectKey = fmt.Errorf("%w: object key cannot be empty", ErrValidation)
	ErrEmptyFilename  = fmt.Errorf("%w: filename cannot be empty", ErrValidation)
	ErrInvalidSize    = fmt.Errorf("%w: file size must be positive", ErrValidation)
)

// FileInfo records a file that a client uploaded directly to object
// storage. The bytes themselves never pass through this service; only the
// metadata reported back after the direct upload is persisted.
type FileInfo struct {
	ID        uuid.UUID `json:"id"`
	ObjectKey string    `json:"object_key"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	Hash      string    `json:"hash"`
	FileType  string    `json:"file_type"`
	URL       string    `json:"url"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the FileInfo has valid data.
func (f *FileInfo) Validate() error {
	if f.ObjectKey == "" {
		return ErrEmptyObjectKey
	}
	if f.Filename == "" {
		return ErrEmptyFilename
	}
	if f.Size <= 0 {
		return ErrInvalidSize
	}
	return nil
}
