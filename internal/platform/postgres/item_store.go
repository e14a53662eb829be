package postgres

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/store"
)

// itemTable maps domain.Item onto the items table. Items are the only
// owned resource: OwnerOf gates updates and deletes to the owner.
var itemTable = TableSpec[domain.Item, domain.ItemPatch]{
	Table: "items",
	Name:  "item",
	Columns: []string{
		"id", "title", "description", "price", "is_available",
		"owner_id", "created_at", "updated_at",
	},
	Args: func(i *domain.Item) ([]any, error) {
		return []any{
			i.ID, i.Title, i.Description, nullFloat(i.Price), i.IsAvailable,
			i.OwnerID, i.CreatedAt, i.UpdatedAt,
		}, nil
	},
	ScanRow: func(scan func(dest ...any) error) (*domain.Item, error) {
		var (
			i     domain.Item
			price sql.NullFloat64
		)
		err := scan(
			&i.ID, &i.Title, &i.Description, &price, &i.IsAvailable,
			&i.OwnerID, &i.CreatedAt, &i.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		i.Price = floatPtr(price)
		return &i, nil
	},
	Prepare: func(i *domain.Item, actorID uuid.UUID, now time.Time) {
		i.ID = uuid.New()
		i.OwnerID = actorID
		i.CreatedAt = now
		i.UpdatedAt = now
	},
	Touch: func(i *domain.Item, actorID uuid.UUID, now time.Time) {
		i.UpdatedAt = now
	},
	Validate:   func(i *domain.Item) error { return i.Validate() },
	ApplyPatch: func(i *domain.Item, p domain.ItemPatch) { i.Apply(p) },
	Search: searchColumns{
		Contains: map[string]bool{"title": true, "description": true},
		Equals:   map[string]bool{},
		Ranges:   map[string]bool{"price": true},
		Bools:    map[string]bool{"is_available": true},
	},
	OwnerOf: func(i *domain.Item) uuid.UUID { return i.OwnerID },
}

// NewItemStore creates the PostgreSQL item store.
func NewItemStore(db store.DBTX, logger *slog.Logger) *RecordStore[domain.Item, domain.ItemPatch] {
	return NewRecordStore(db, itemTable, logger)
}

var _ store.RecordStore[domain.Item, domain.ItemPatch] = (*RecordStore[domain.Item, domain.ItemPatch])(nil)
