// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Every field-level validation error wraps this sentinel so callers
	// can classify with a single errors.Is check.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// Field-level validation errors shared by the record entities.
var (
	ErrEmptyTitle     = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrEmptyMaker     = fmt.Errorf("%w: maker cannot be empty", ErrValidation)
	ErrEmptyBrand     = fmt.Errorf("%w: brand cannot be empty", ErrValidation)
	ErrEmptyLocation  = fmt.Errorf("%w: location cannot be empty", ErrValidation)
	ErrStarOutOfRange = fmt.Errorf("%w: star rating out of range", ErrValidation)
	ErrInvalidPrice   = fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	ErrEmptyOwner     = fmt.Errorf("%w: owner cannot be empty", ErrValidation)
	ErrEmptyRecordID  = fmt.Errorf("%w: record ID cannot be empty", ErrValidation)
)
