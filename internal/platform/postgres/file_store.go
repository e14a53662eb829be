package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/domain"
	"github.com/yolo-life/yolo-api/internal/platform/logger"
	"github.com/yolo-life/yolo-api/internal/store"
)

const fileColumns = `object_key, filename, size, hash, file_type, url, created_by, created_at`

// PostgresFileStore implements the store.FileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFileStore creates a new PostgreSQL implementation of the
// FileStore interface.
func NewPostgresFileStore(db store.DBTX, logger *slog.Logger) *PostgresFileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFileStore{
		db:     db,
		logger: logger.With(slog.String("component", "file_store")),
	}
}

// Ensure PostgresFileStore implements store.FileStore interface
var _ store.FileStore = (*PostgresFileStore)(nil)

// Create implements store.FileStore.Create
func (s *PostgresFileStore) Create(ctx context.Context, file *domain.FileInfo) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := file.Validate(); err != nil {
		log.Warn("file validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := fmt.Sprintf(`INSERT INTO files (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, fileColumns)
	_, err := s.db.ExecContext(
		ctx,
		query,
		file.ObjectKey,
		file.Filename,
		file.Size,
		file.Hash,
		file.FileType,
		file.URL,
		nullUUID(file.CreatedBy),
		file.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			log.Warn("duplicate object key during file create",
				slog.String("object_key", file.ObjectKey))
			return store.ErrDuplicate
		}
		log.Error("failed to create file record",
			slog.String("error", err.Error()),
			slog.String("object_key", file.ObjectKey))
		return err
	}

	log.Info("file record created",
		slog.String("object_key", file.ObjectKey),
		slog.Int64("size", file.Size))
	return nil
}

// GetByKey implements store.FileStore.GetByKey
func (s *PostgresFileStore) GetByKey(ctx context.Context, objectKey string) (*domain.FileInfo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM files WHERE object_key = $1`, fileColumns)
	file, err := scanFile(s.db.QueryRowContext(ctx, query, objectKey).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFileNotFound
		}
		log.Error("failed to get file by key",
			slog.String("error", err.Error()),
			slog.String("object_key", objectKey))
		return nil, err
	}
	return file, nil
}

// ListByCreator implements store.FileStore.ListByCreator
func (s *PostgresFileStore) ListByCreator(ctx context.Context, creatorID uuid.UUID, page store.Page) ([]*domain.FileInfo, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	page = page.Normalize()

	query := fmt.Sprintf(`
		SELECT %s FROM files
		WHERE created_by = $1
		ORDER BY created_at DESC, object_key DESC
		LIMIT $2 OFFSET $3
	`, fileColumns)

	rows, err := s.db.QueryContext(ctx, query, creatorID, page.Limit, page.Skip)
	if err != nil {
		log.Error("failed to list files",
			slog.String("error", err.Error()),
			slog.String("creator_id", creatorID.String()))
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	var files []*domain.FileInfo
	for rows.Next() {
		file, err := scanFile(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM files WHERE created_by = $1`, creatorID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return files, total, nil
}

func scanFile(scan func(dest ...any) error) (*domain.FileInfo, error) {
	var (
		file      domain.FileInfo
		createdBy uuid.NullUUID
	)
	err := scan(
		&file.ObjectKey,
		&file.Filename,
		&file.Size,
		&file.Hash,
		&file.FileType,
		&file.URL,
		&createdBy,
		&file.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	file.CreatedBy = createdBy.UUID
	return &file, nil
}
