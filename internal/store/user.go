package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// It provides methods for user account management used by both the
// authentication flows and the profile endpoints.
type UserStore interface {
	// Create saves a new user to the store. The user's HashedPassword
	// must already be populated; the store never sees plaintext.
	// Returns ErrUsernameExists, ErrEmailExists or ErrMobileExists on a
	// uniqueness violation and ErrInvalidEntity when validation fails.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByIdentifier retrieves a user by username, email or mobile,
	// whichever matches. Login accepts any of the three.
	// Returns ErrUserNotFound if no user matches.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// Update applies the patch to the user and returns the updated row.
	// A patch carrying a new plaintext password is hashed before storage.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)

	// Delete removes a user. Returns ErrUserNotFound if the user does not
	// exist and ErrUserReferenced while records still point at them.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a copy of the store bound to an in-flight
	// transaction, so user operations can participate in larger units of
	// work.
	WithTx(tx DBTX) UserStore
}
