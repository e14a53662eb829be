package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for User.
var (
	ErrEmptyUserID      = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyUsername    = fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
	ErrMissingContact   = fmt.Errorf("%w: at least one of email or mobile is required", ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least 8 characters long", ErrValidation)
	ErrPasswordTooLong  = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)
	ErrEmptyPassword    = fmt.Errorf("%w: password cannot be empty", ErrValidation)
)

// User represents a registered account. Either Email or Mobile must be set;
// each is unique when present. IsActive gates authentication: tokens issued
// to a deactivated user stop working at the authentication gate.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	Mobile         string    `json:"mobile,omitempty"`
	Password       string    `json:"-"` // Plaintext, only populated transiently during registration/updates
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	FullName       string    `json:"full_name,omitempty"`
	IsActive       bool      `json:"is_active"`
	IsSuperuser    bool      `json:"is_superuser"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given identity fields and plaintext
// password. It generates a new UUID and sets the creation/update timestamps.
// The caller is responsible for hashing the password before storage.
func NewUser(username, email, mobile, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  strings.TrimSpace(username),
		Email:     strings.TrimSpace(email),
		Mobile:    strings.TrimSpace(mobile),
		Password:  password,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if len(u.Username) < 3 {
		return ErrEmptyUsername
	}

	if u.Email == "" && u.Mobile == "" {
		return ErrMissingContact
	}

	if u.Email != "" && !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 { // bcrypt's practical limit
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs basic validation of email format.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// UserPatch carries the fields of a partial user update. Only non-nil
// fields are applied.
type UserPatch struct {
	Email    *string `json:"email"`
	Mobile   *string `json:"mobile"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// Apply copies the supplied patch fields onto the user. A supplied Password
// lands in the plaintext field; the store re-hashes it before persisting.
func (u *User) Apply(p UserPatch) {
	if p.Email != nil {
		u.Email = strings.TrimSpace(*p.Email)
	}
	if p.Mobile != nil {
		u.Mobile = strings.TrimSpace(*p.Mobile)
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}
