package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/store"
)

// MockFileStore implements store.FileStore for testing
type MockFileStore struct {
	mu    sync.Mutex
	Files []*domain.FileInfo

	CreateErr error
	ListErr   error
}

var _ store.FileStore = (*MockFileStore)(nil)

// Create implements the FileStore interface
func (m *MockFileStore) Create(ctx context.Context, file *domain.FileInfo) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.Files {
		if existing.ObjectKey == file.ObjectKey {
			return store.ErrDuplicate
		}
	}
	m.Files = append([]*domain.FileInfo{file}, m.Files...)
	return nil
}

// GetByKey implements the FileStore interface
func (m *MockFileStore) GetByKey(ctx context.Context, objectKey string) (*domain.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, file := range m.Files {
		if file.ObjectKey == objectKey {
			return file, nil
		}
	}
	return nil, store.ErrFileNotFound
}

// ListByCreator implements the FileStore interface
func (m *MockFileStore) ListByCreator(ctx context.Context, creatorID uuid.UUID, page store.Page) ([]*domain.FileInfo, int64, error) {
	if m.ListErr != nil {
		return nil, 0, m.ListErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	page = page.Normalize()
	var matched []*domain.FileInfo
	for _, file := range m.Files {
		if file.CreatedBy == creatorID {
			matched = append(matched, file)
		}
	}

	total := int64(len(matched))
	if page.Skip >= len(matched) {
		return []*domain.FileInfo{}, total, nil
	}
	matched = matched[page.Skip:]
	if len(matched) > page.Limit {
		matched = matched[:page.Limit]
	}
	return matched, total, nil
}
