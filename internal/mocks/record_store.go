package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/store"
)

// MockRecordStore is an in-memory store.RecordStore for testing. The
// small set of accessor funcs tells the generic code how to reach into
// the concrete record type; everything else is shared.
type MockRecordStore[R any, P any] struct {
	mu      sync.Mutex
	records []*R

	// Required accessors
	IDOf  func(*R) uuid.UUID
	SetID func(*R, uuid.UUID)
	Apply func(*R, P)

	// Match reports whether a record satisfies the filters. Nil matches
	// everything, which suits handler tests that don't exercise search.
	Match func(*R, store.Filters) bool

	// OwnerOf gates mutations when set, mirroring owned resources.
	OwnerOf func(*R) uuid.UUID

	// Error overrides
	CreateErr error
	GetErr    error
	SearchErr error
	UpdateErr error
	DeleteErr error
}

var _ store.RecordStore[struct{}, struct{}] = (*MockRecordStore[struct{}, struct{}])(nil)

// Create implements the RecordStore interface
func (m *MockRecordStore[R, P]) Create(ctx context.Context, record *R, actorID uuid.UUID) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.IDOf(record) == uuid.Nil {
		m.SetID(record, uuid.New())
	}
	// Newest first, matching the real store's ordering.
	m.records = append([]*R{record}, m.records...)
	return nil
}

// GetByID implements the RecordStore interface
func (m *MockRecordStore[R, P]) GetByID(ctx context.Context, id uuid.UUID) (*R, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if m.IDOf(r) == id {
			return r, nil
		}
	}
	return nil, store.ErrRecordNotFound
}

// List implements the RecordStore interface
func (m *MockRecordStore[R, P]) List(ctx context.Context, page store.Page) ([]*R, int64, error) {
	records, err := m.Search(ctx, store.Filters{}, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := m.SearchCount(ctx, store.Filters{})
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Search implements the RecordStore interface
func (m *MockRecordStore[R, P]) Search(ctx context.Context, filters store.Filters, page store.Page) ([]*R, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	page = page.Normalize()
	matched := m.matchAll(filters)

	if page.Skip >= len(matched) {
		return []*R{}, nil
	}
	matched = matched[page.Skip:]
	if len(matched) > page.Limit {
		matched = matched[:page.Limit]
	}
	return matched, nil
}

// SearchCount implements the RecordStore interface
func (m *MockRecordStore[R, P]) SearchCount(ctx context.Context, filters store.Filters) (int64, error) {
	if m.SearchErr != nil {
		return 0, m.SearchErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(len(m.matchAll(filters))), nil
}

// Update implements the RecordStore interface
func (m *MockRecordStore[R, P]) Update(ctx context.Context, id uuid.UUID, patch P, actorID uuid.UUID) (*R, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if m.IDOf(r) != id {
			continue
		}
		if m.OwnerOf != nil && m.OwnerOf(r) != actorID {
			return nil, store.ErrUpdateForbidden
		}
		m.Apply(r, patch)
		return r, nil
	}
	return nil, store.ErrRecordNotFound
}

// Delete implements the RecordStore interface
func (m *MockRecordStore[R, P]) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (bool, error) {
	if m.DeleteErr != nil {
		return false, m.DeleteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range m.records {
		if m.IDOf(r) != id {
			continue
		}
		if m.OwnerOf != nil && m.OwnerOf(r) != actorID {
			return false, store.ErrUpdateForbidden
		}
		m.records = append(m.records[:i], m.records[i+1:]...)
		return true, nil
	}
	return false, nil
}

// Len reports the number of stored records.
func (m *MockRecordStore[R, P]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *MockRecordStore[R, P]) matchAll(filters store.Filters) []*R {
	matched := make([]*R, 0, len(m.records))
	for _, r := range m.records {
		if m.Match == nil || m.Match(r, filters) {
			matched = append(matched, r)
		}
	}
	return matched
}
