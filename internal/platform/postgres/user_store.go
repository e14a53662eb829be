package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/platform/logger"
	"github.com/yolo-life/yolo-api/internal/store"
)

const userColumns = `id, username, email, mobile, hashed_password, full_name,
		is_active, is_superuser, created_at, updated_at`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend. Password hashing
// happens here so plaintext never crosses the store boundary outward.
type PostgresUserStore struct {
	db         store.DBTX
	bcryptCost int
	logger     *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. Costs outside bcrypt's valid range fall back to
// bcrypt.DefaultCost.
func NewPostgresUserStore(db store.DBTX, bcryptCost int, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx store.DBTX) store.UserStore {
	clone := *s
	clone.db = tx
	return &clone
}

// Create implements store.UserStore.Create
// It hashes the user's plaintext password when no hash is present, then
// inserts the row, mapping unique violations to the matching sentinel.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if user.HashedPassword == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if err != nil {
			log.Error("failed to hash password",
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = string(hashed)
		user.Password = ""
	}

	query := fmt.Sprintf(`INSERT INTO users (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, userColumns)
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		nullString(user.Email),
		nullString(user.Mobile),
		user.HashedPassword,
		user.FullName,
		user.IsActive,
		user.IsSuperuser,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if mapped := mapUserUniqueViolation(err); mapped != nil {
			log.Warn("duplicate user during create",
				slog.String("error", err.Error()),
				slog.String("username", user.Username))
			return mapped
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	user, err := scanUser(s.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}
	return user, nil
}

// GetByIdentifier implements store.UserStore.GetByIdentifier
// Username, email and mobile share one lookup since login accepts any.
func (s *PostgresUserStore) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE username = $1 OR email = $1 OR mobile = $1`,
		userColumns)
	user, err := scanUser(s.db.QueryRowContext(ctx, query, identifier).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by identifier")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by identifier",
			slog.String("error", err.Error()))
		return nil, err
	}
	return user, nil
}

// Update implements store.UserStore.Update
// The row is locked, patched and rewritten in one transaction. A patch
// with a new password is hashed here.
func (s *PostgresUserStore) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	if db, ok := s.db.(*sql.DB); ok {
		var updated *domain.User
		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			var txErr error
			updated, txErr = s.WithTx(tx).Update(ctx, id, patch)
			return txErr
		})
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 FOR UPDATE`, userColumns)
	user, err := scanUser(s.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to load user for update",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}

	user.Apply(patch)
	user.UpdatedAt = time.Now().UTC()

	if user.Password != "" {
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if hashErr != nil {
			log.Error("failed to hash password",
				slog.String("error", hashErr.Error()))
			return nil, fmt.Errorf("failed to hash password: %w", hashErr)
		}
		user.HashedPassword = string(hashed)
		user.Password = ""
	}

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	update := `
		UPDATE users
		SET email = $2, mobile = $3, hashed_password = $4, full_name = $5,
			is_active = $6, updated_at = $7
		WHERE id = $1
	`
	_, err = s.db.ExecContext(
		ctx,
		update,
		user.ID,
		nullString(user.Email),
		nullString(user.Mobile),
		user.HashedPassword,
		user.FullName,
		user.IsActive,
		user.UpdatedAt,
	)
	if err != nil {
		if mapped := mapUserUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}

	log.Info("user updated", slog.String("user_id", id.String()))
	return user, nil
}

// Delete implements store.UserStore.Delete
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("cannot delete referenced user",
				slog.String("user_id", id.String()))
			return store.ErrUserReferenced
		}
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrUserNotFound
	}

	log.Info("user deleted", slog.String("user_id", id.String()))
	return nil
}

// mapUserUniqueViolation translates a unique constraint violation on the
// users table to its sentinel, or returns nil for other errors.
func mapUserUniqueViolation(err error) error {
	switch {
	case isUniqueViolation(err, "users_username"):
		return store.ErrUsernameExists
	case isUniqueViolation(err, "users_email"):
		return store.ErrEmailExists
	case isUniqueViolation(err, "users_mobile"):
		return store.ErrMobileExists
	case isUniqueViolation(err, ""):
		return store.ErrDuplicate
	}
	return nil
}

func scanUser(scan func(dest ...any) error) (*domain.User, error) {
	var (
		user   domain.User
		email  sql.NullString
		mobile sql.NullString
	)
	err := scan(
		&user.ID,
		&user.Username,
		&email,
		&mobile,
		&user.HashedPassword,
		&user.FullName,
		&user.IsActive,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Email = email.String
	user.Mobile = mobile.String
	return &user, nil
}

// nullString binds an optional text column, "" as SQL NULL so the
// unique constraints on email and mobile ignore absent values.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
