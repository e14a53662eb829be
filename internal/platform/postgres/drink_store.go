package postgres

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/store"
)

// drinkTable maps domain.Drink onto the drinks table.
var drinkTable = TableSpec[domain.Drink, domain.DrinkPatch]{
	Table: "drinks",
	Name:  "drink",
	Columns: []string{
		"id", "title", "content", "cover", "images", "tags", "star",
		"brand", "flavor", "drink_type", "sweetness", "ice",
		"created_by", "updated_by", "created_at", "updated_at",
	},
	Args: func(d *domain.Drink) ([]any, error) {
		images, err := jsonbFromStrings(d.Images)
		if err != nil {
			return nil, err
		}
		tags, err := jsonbFromStrings(d.Tags)
		if err != nil {
			return nil, err
		}
		return []any{
			d.ID, d.Title, d.Content, d.Cover, images, tags,
			nullFloat(d.Star), d.Brand, d.Flavor, d.DrinkType, d.Sweetness, d.Ice,
			nullUUID(d.CreatedBy), nullUUID(d.UpdatedBy),
			d.CreatedAt, d.UpdatedAt,
		}, nil
	},
	ScanRow: func(scan func(dest ...any) error) (*domain.Drink, error) {
		var (
			d         domain.Drink
			images    []byte
			tags      []byte
			star      sql.NullFloat64
			createdBy uuid.NullUUID
			updatedBy uuid.NullUUID
		)
		err := scan(
			&d.ID, &d.Title, &d.Content, &d.Cover, &images, &tags, &star,
			&d.Brand, &d.Flavor, &d.DrinkType, &d.Sweetness, &d.Ice,
			&createdBy, &updatedBy, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if d.Images, err = stringsFromJSONB(images); err != nil {
			return nil, err
		}
		if d.Tags, err = stringsFromJSONB(tags); err != nil {
			return nil, err
		}
		d.Star = floatPtr(star)
		d.CreatedBy = createdBy.UUID
		d.UpdatedBy = updatedBy.UUID
		return &d, nil
	},
	Prepare: func(d *domain.Drink, actorID uuid.UUID, now time.Time) {
		d.ID = uuid.New()
		d.CreatedBy = actorID
		d.UpdatedBy = actorID
		d.CreatedAt = now
		d.UpdatedAt = now
	},
	Touch: func(d *domain.Drink, actorID uuid.UUID, now time.Time) {
		d.UpdatedBy = actorID
		d.UpdatedAt = now
	},
	Validate:   func(d *domain.Drink) error { return d.Validate() },
	ApplyPatch: func(d *domain.Drink, p domain.DrinkPatch) { d.Apply(p) },
	Search: searchColumns{
		Contains: map[string]bool{"title": true, "content": true},
		Equals: map[string]bool{
			"brand": true, "flavor": true, "drink_type": true,
			"sweetness": true, "ice": true,
		},
		Ranges: map[string]bool{"star": true},
		Tags:   "tags",
	},
}

// NewDrinkStore creates the PostgreSQL drink store.
func NewDrinkStore(db store.DBTX, logger *slog.Logger) *RecordStore[domain.Drink, domain.DrinkPatch] {
	return NewRecordStore(db, drinkTable, logger)
}

var _ store.RecordStore[domain.Drink, domain.DrinkPatch] = (*RecordStore[domain.Drink, domain.DrinkPatch])(nil)
