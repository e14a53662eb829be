package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it so a single errors.Is
	// check classifies all of them.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrRecordNotFound indicates that the requested record does not exist,
	// or (for ownership-gated resources) is not owned by the caller.
	ErrRecordNotFound = fmt.Errorf("%w: record", ErrNotFound)

	// ErrFileNotFound indicates that the requested file record does not exist.
	ErrFileNotFound = fmt.Errorf("%w: file", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrUsernameExists indicates that a user with the given username already exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrMobileExists indicates that a user with the given mobile number already exists.
	ErrMobileExists = fmt.Errorf("%w: mobile", ErrDuplicate)

	// ErrUserReferenced indicates that a user cannot be deleted because
	// records still reference them as creator, updater, or owner.
	ErrUserReferenced = errors.New("user is still referenced by records")

	// ErrUpdateForbidden indicates that the actor is not permitted to
	// modify or delete the record (ownership-gated resources only).
	ErrUpdateForbidden = errors.New("actor may not modify this record")

	// ErrUnknownColumn indicates a filter referenced a column that the
	// store does not expose for searching.
	ErrUnknownColumn = errors.New("unknown filter column")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
