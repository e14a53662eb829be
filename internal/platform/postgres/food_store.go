package postgres

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/store"
)

// foodTable maps domain.Food onto the foods table.
var foodTable = TableSpec[domain.Food, domain.FoodPatch]{
	Table: "foods",
	Name:  "food",
	Columns: []string{
		"id", "title", "content", "cover", "images", "tags", "star",
		"maker", "flavor", "created_by", "updated_by", "created_at", "updated_at",
	},
	Args: func(f *domain.Food) ([]any, error) {
		images, err := jsonbFromStrings(f.Images)
		if err != nil {
			return nil, err
		}
		tags, err := jsonbFromStrings(f.Tags)
		if err != nil {
			return nil, err
		}
		return []any{
			f.ID, f.Title, f.Content, f.Cover, images, tags,
			nullFloat(f.Star), f.Maker, f.Flavor,
			nullUUID(f.CreatedBy), nullUUID(f.UpdatedBy),
			f.CreatedAt, f.UpdatedAt,
		}, nil
	},
	ScanRow: func(scan func(dest ...any) error) (*domain.Food, error) {
		var (
			f         domain.Food
			images    []byte
			tags      []byte
			star      sql.NullFloat64
			createdBy uuid.NullUUID
			updatedBy uuid.NullUUID
		)
		err := scan(
			&f.ID, &f.Title, &f.Content, &f.Cover, &images, &tags, &star,
			&f.Maker, &f.Flavor, &createdBy, &updatedBy,
			&f.CreatedAt, &f.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if f.Images, err = stringsFromJSONB(images); err != nil {
			return nil, err
		}
		if f.Tags, err = stringsFromJSONB(tags); err != nil {
			return nil, err
		}
		f.Star = floatPtr(star)
		f.CreatedBy = createdBy.UUID
		f.UpdatedBy = updatedBy.UUID
		return &f, nil
	},
	Prepare: func(f *domain.Food, actorID uuid.UUID, now time.Time) {
		f.ID = uuid.New()
		f.CreatedBy = actorID
		f.UpdatedBy = actorID
		f.CreatedAt = now
		f.UpdatedAt = now
	},
	Touch: func(f *domain.Food, actorID uuid.UUID, now time.Time) {
		f.UpdatedBy = actorID
		f.UpdatedAt = now
	},
	Validate:   func(f *domain.Food) error { return f.Validate() },
	ApplyPatch: func(f *domain.Food, p domain.FoodPatch) { f.Apply(p) },
	Search: searchColumns{
		Contains: map[string]bool{"title": true, "content": true},
		Equals:   map[string]bool{"maker": true, "flavor": true},
		Ranges:   map[string]bool{"star": true},
		Tags:     "tags",
	},
}

// NewFoodStore creates the PostgreSQL food store.
func NewFoodStore(db store.DBTX, logger *slog.Logger) *RecordStore[domain.Food, domain.FoodPatch] {
	return NewRecordStore(db, foodTable, logger)
}

var _ store.RecordStore[domain.Food, domain.FoodPatch] = (*RecordStore[domain.Food, domain.FoodPatch])(nil)
