package postgres

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/store"
)

// enjoyTable maps domain.Enjoy onto the enjoys table.
var enjoyTable = TableSpec[domain.Enjoy, domain.EnjoyPatch]{
	Table: "enjoys",
	Name:  "enjoy",
	Columns: []string{
		"id", "title", "content", "cover", "images", "tags", "star",
		"maker", "flavor", "location", "price_per_person", "recommend_dishes",
		"created_by", "updated_by", "created_at", "updated_at",
	},
	Args: func(e *domain.Enjoy) ([]any, error) {
		images, err := jsonbFromStrings(e.Images)
		if err != nil {
			return nil, err
		}
		tags, err := jsonbFromStrings(e.Tags)
		if err != nil {
			return nil, err
		}
		dishes, err := jsonbFromStrings(e.RecommendDishes)
		if err != nil {
			return nil, err
		}
		return []any{
			e.ID, e.Title, e.Content, e.Cover, images, tags,
			nullFloat(e.Star), e.Maker, e.Flavor, e.Location,
			nullFloat(e.PricePerPerson), dishes,
			nullUUID(e.CreatedBy), nullUUID(e.UpdatedBy),
			e.CreatedAt, e.UpdatedAt,
		}, nil
	},
	ScanRow: func(scan func(dest ...any) error) (*domain.Enjoy, error) {
		var (
			e         domain.Enjoy
			images    []byte
			tags      []byte
			dishes    []byte
			star      sql.NullFloat64
			price     sql.NullFloat64
			createdBy uuid.NullUUID
			updatedBy uuid.NullUUID
		)
		err := scan(
			&e.ID, &e.Title, &e.Content, &e.Cover, &images, &tags, &star,
			&e.Maker, &e.Flavor, &e.Location, &price, &dishes,
			&createdBy, &updatedBy, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if e.Images, err = stringsFromJSONB(images); err != nil {
			return nil, err
		}
		if e.Tags, err = stringsFromJSONB(tags); err != nil {
			return nil, err
		}
		if e.RecommendDishes, err = stringsFromJSONB(dishes); err != nil {
			return nil, err
		}
		e.Star = floatPtr(star)
		e.PricePerPerson = floatPtr(price)
		e.CreatedBy = createdBy.UUID
		e.UpdatedBy = updatedBy.UUID
		return &e, nil
	},
	Prepare: func(e *domain.Enjoy, actorID uuid.UUID, now time.Time) {
		e.ID = uuid.New()
		e.CreatedBy = actorID
		e.UpdatedBy = actorID
		e.CreatedAt = now
		e.UpdatedAt = now
	},
	Touch: func(e *domain.Enjoy, actorID uuid.UUID, now time.Time) {
		e.UpdatedBy = actorID
		e.UpdatedAt = now
	},
	Validate:   func(e *domain.Enjoy) error { return e.Validate() },
	ApplyPatch: func(e *domain.Enjoy, p domain.EnjoyPatch) { e.Apply(p) },
	Search: searchColumns{
		Contains: map[string]bool{"title": true, "content": true, "location": true},
		Equals:   map[string]bool{"maker": true, "flavor": true},
		Ranges:   map[string]bool{"star": true, "price_per_person": true},
		Tags:     "tags",
	},
}

// NewEnjoyStore creates the PostgreSQL store for dining-out records.
func NewEnjoyStore(db store.DBTX, logger *slog.Logger) *RecordStore[domain.Enjoy, domain.EnjoyPatch] {
	return NewRecordStore(db, enjoyTable, logger)
}

var _ store.RecordStore[domain.Enjoy, domain.EnjoyPatch] = (*RecordStore[domain.Enjoy, domain.EnjoyPatch])(nil)
