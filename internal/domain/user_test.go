package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yolo-life/yolo-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user with email", func(t *testing.T) {
		t.Parallel()
		user, err := domain.NewUser("alice", "alice@example.com", "", "password123")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.True(t, user.IsActive)
		assert.False(t, user.CreatedAt.IsZero())
		assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	})

	t.Run("valid user with mobile only", func(t *testing.T) {
		t.Parallel()
		user, err := domain.NewUser("bob", "", "13800138000", "password123")
		require.NoError(t, err)
		assert.Empty(t, user.Email)
		assert.Equal(t, "13800138000", user.Mobile)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		t.Parallel()
		user, err := domain.NewUser("  carol  ", " carol@example.com ", "", "password123")
		require.NoError(t, err)
		assert.Equal(t, "carol", user.Username)
		assert.Equal(t, "carol@example.com", user.Email)
	})

	t.Run("rejects short username", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewUser("ab", "ab@example.com", "", "password123")
		assert.ErrorIs(t, err, domain.ErrEmptyUsername)
	})

	t.Run("rejects missing contact", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewUser("dave", "", "", "password123")
		assert.ErrorIs(t, err, domain.ErrMissingContact)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		t.Parallel()
		for _, email := range []string{"no-at-sign", "@example.com", "x@", "x@nodot"} {
			_, err := domain.NewUser("erin", email, "", "password123")
			assert.ErrorIs(t, err, domain.ErrInvalidEmail, "email %q", email)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewUser("frank", "frank@example.com", "", "short")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("rejects overlong password", func(t *testing.T) {
		t.Parallel()
		long := make([]byte, 73)
		for i := range long {
			long[i] = 'x'
		}
		_, err := domain.NewUser("grace", "grace@example.com", "", string(long))
		assert.ErrorIs(t, err, domain.ErrPasswordTooLong)
	})
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	base := func() *domain.User {
		return &domain.User{
			ID:             uuid.New(),
			Username:       "alice",
			Email:          "alice@example.com",
			HashedPassword: "$2a$10$hash",
			IsActive:       true,
		}
	}

	t.Run("valid with hashed password only", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, base().Validate())
	})

	t.Run("rejects nil ID", func(t *testing.T) {
		t.Parallel()
		u := base()
		u.ID = uuid.Nil
		assert.ErrorIs(t, u.Validate(), domain.ErrEmptyUserID)
	})

	t.Run("rejects missing password and hash", func(t *testing.T) {
		t.Parallel()
		u := base()
		u.HashedPassword = ""
		assert.ErrorIs(t, u.Validate(), domain.ErrEmptyPassword)
	})

	t.Run("all user errors wrap ErrValidation", func(t *testing.T) {
		t.Parallel()
		u := base()
		u.Username = "x"
		assert.ErrorIs(t, u.Validate(), domain.ErrValidation)
	})
}

func TestUserApply(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	user := &domain.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice",
		IsActive: true,
	}

	user.Apply(domain.UserPatch{
		Email:    strPtr(" new@example.com "),
		FullName: strPtr("Alice Liddell"),
		Password: strPtr("newpassword"),
		IsActive: boolPtr(false),
	})

	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "Alice Liddell", user.FullName)
	assert.Equal(t, "newpassword", user.Password)
	assert.False(t, user.IsActive)
	// Absent fields stay put.
	assert.Equal(t, "alice", user.Username)

	// A zero patch changes nothing.
	before := *user
	user.Apply(domain.UserPatch{})
	assert.Equal(t, before, *user)
}
