package store

import (
	"context"

	"github.com/google/uuid"
)

// RecordStore defines persistence for a lifestyle record type R with
// patch type P. One interface covers items, foods, drinks and enjoys;
// each implementation decides which columns are searchable and whether
// mutations are restricted to the record's owner.
//
// All methods accept a context for cancellation and timeout control.
// Implementations translate driver errors into the sentinel errors in
// this package so callers never inspect driver-specific types.
type RecordStore[R any, P any] interface {
	// Create persists a new record. The actor becomes the record's
	// creator. Returns ErrInvalidEntity when the record fails domain
	// validation and ErrDuplicate on a uniqueness violation.
	Create(ctx context.Context, record *R, actorID uuid.UUID) error

	// GetByID retrieves a record by its unique ID.
	// Returns ErrRecordNotFound when no record exists with the given ID.
	GetByID(ctx context.Context, id uuid.UUID) (*R, error)

	// List returns a page of records ordered by creation time descending
	// (ties broken by ID descending), along with the total count.
	List(ctx context.Context, page Page) ([]*R, int64, error)

	// Search returns the page of records matching the filters, in the
	// same order as List.
	Search(ctx context.Context, filters Filters, page Page) ([]*R, error)

	// SearchCount returns the total number of records matching the
	// filters, ignoring pagination. It evaluates the same predicates as
	// Search so a count is always consistent with the rows a caller
	// would page through.
	SearchCount(ctx context.Context, filters Filters) (int64, error)

	// Update applies the patch to the record and returns the updated
	// row. Returns ErrRecordNotFound when the record does not exist,
	// ErrInvalidEntity when the patched record fails validation, and
	// ErrUpdateForbidden when the actor may not modify the record.
	Update(ctx context.Context, id uuid.UUID, patch P, actorID uuid.UUID) (*R, error)

	// Delete removes a record. The returned bool reports whether a row
	// was deleted; deleting an absent record returns (false, nil).
	// Returns ErrUpdateForbidden when the actor may not delete the record.
	Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (bool, error)
}
