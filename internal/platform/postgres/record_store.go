// Package postgres contains PostgreSQL implementations of the store
// interfaces, sharing one generic record store across all lifestyle
// record tables.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yolo-life/yolo-api/internal/platform/logger"
	"github.com/yolo-life/yolo-api/internal/store"
)

// TableSpec describes how one record type maps onto its table: column
// layout, value binding, scanning, audit stamping and the searchable
// column sets. Each resource package-level spec value (itemTable,
// foodTable, ...) is the single place its SQL shape is defined.
type TableSpec[R any, P any] struct {
	// Table is the table name.
	Table string
	// Name is the singular resource name used in log fields.
	Name string
	// Columns lists every column in insert order. Columns[0] must be "id".
	Columns []string
	// Args binds a record's values in Columns order.
	Args func(r *R) ([]any, error)
	// ScanRow reads one row in Columns order.
	ScanRow func(scan func(dest ...any) error) (*R, error)
	// Prepare stamps identity and audit fields on a new record,
	// discarding any caller-supplied values for them.
	Prepare func(r *R, actorID uuid.UUID, now time.Time)
	// Touch stamps audit fields after a patch.
	Touch func(r *R, actorID uuid.UUID, now time.Time)
	// Validate checks domain invariants.
	Validate func(r *R) error
	// ApplyPatch folds a patch into an existing record.
	ApplyPatch func(r *R, patch P)
	// Search declares the filterable columns.
	Search searchColumns
	// OwnerOf returns the only user allowed to mutate the record, or
	// uuid.Nil when any authenticated user may. Set for owned resources
	// such as items, unset for the shared lifestyle records.
	OwnerOf func(r *R) uuid.UUID
}

// RecordStore is the PostgreSQL implementation of store.RecordStore,
// parameterized over the record and patch types and driven entirely by
// its TableSpec.
type RecordStore[R any, P any] struct {
	db     store.DBTX
	spec   TableSpec[R, P]
	logger *slog.Logger
	now    func() time.Time
}

// NewRecordStore creates a record store over the given connection or
// transaction. If logger is nil, a default logger will be used.
func NewRecordStore[R any, P any](db store.DBTX, spec TableSpec[R, P], logger *slog.Logger) *RecordStore[R, P] {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RecordStore[R, P]{
		db:     db,
		spec:   spec,
		logger: logger.With(slog.String("component", spec.Name+"_store")),
		now:    time.Now,
	}
}

// WithTx returns a copy of the store bound to an in-flight transaction.
func (s *RecordStore[R, P]) WithTx(tx store.DBTX) *RecordStore[R, P] {
	clone := *s
	clone.db = tx
	return &clone
}

func (s *RecordStore[R, P]) columnList() string {
	return strings.Join(s.spec.Columns, ", ")
}

// Create persists a new record, stamping its ID and audit fields.
func (s *RecordStore[R, P]) Create(ctx context.Context, record *R, actorID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.spec.Prepare(record, actorID, s.now().UTC())

	if err := s.spec.Validate(record); err != nil {
		log.Warn("record validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	args, err := s.spec.Args(record)
	if err != nil {
		return err
	}

	placeholders := make([]string, len(args))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.spec.Table, s.columnList(), strings.Join(placeholders, ", "))

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "") {
			log.Warn("duplicate record during create",
				slog.String("error", err.Error()))
			return store.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during record creation",
				slog.String("error", err.Error()),
				slog.String("actor_id", actorID.String()))
			return fmt.Errorf("%w: referenced user does not exist", store.ErrInvalidEntity)
		}
		log.Error("failed to create record",
			slog.String("error", err.Error()),
			slog.String("table", s.spec.Table))
		return err
	}

	log.Info("record created", slog.String("table", s.spec.Table))
	return nil
}

// GetByID retrieves a record by its unique ID.
func (s *RecordStore[R, P]) GetByID(ctx context.Context, id uuid.UUID) (*R, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", s.columnList(), s.spec.Table)
	row := s.db.QueryRowContext(ctx, query, id)

	record, err := s.spec.ScanRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("record not found",
				slog.String("table", s.spec.Table),
				slog.String("id", id.String()))
			return nil, store.ErrRecordNotFound
		}
		log.Error("failed to get record by ID",
			slog.String("error", err.Error()),
			slog.String("table", s.spec.Table),
			slog.String("id", id.String()))
		return nil, err
	}

	return record, nil
}

// List returns a page of records, newest first, plus the total count.
func (s *RecordStore[R, P]) List(ctx context.Context, page store.Page) ([]*R, int64, error) {
	page = page.Normalize()

	records, err := s.Search(ctx, store.Filters{}, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.SearchCount(ctx, store.Filters{})
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Search returns the page of records matching the filters, ordered by
// creation time descending with ID as the tie breaker.
func (s *RecordStore[R, P]) Search(ctx context.Context, filters store.Filters, page store.Page) ([]*R, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	page = page.Normalize()

	where, args, err := s.spec.Search.buildWhere(filters)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", s.columnList(), s.spec.Table)
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	fmt.Fprintf(&sb, " ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Skip)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		log.Error("failed to search records",
			slog.String("error", err.Error()),
			slog.String("table", s.spec.Table))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]*R, 0, page.Limit)
	for rows.Next() {
		record, err := s.spec.ScanRow(rows.Scan)
		if err != nil {
			log.Error("failed to scan record row",
				slog.String("error", err.Error()),
				slog.String("table", s.spec.Table))
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// SearchCount returns how many records match the filters. It builds its
// WHERE clause from the same filters as Search, so the count always
// agrees with the rows a caller would page through.
func (s *RecordStore[R, P]) SearchCount(ctx context.Context, filters store.Filters) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args, err := s.spec.Search.buildWhere(filters)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.spec.Table)
	if where != "" {
		query += " WHERE " + where
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count records",
			slog.String("error", err.Error()),
			slog.String("table", s.spec.Table))
		return 0, err
	}
	return count, nil
}

// Update applies a patch inside a transaction, locking the row first so
// concurrent patches serialize instead of clobbering each other.
func (s *RecordStore[R, P]) Update(ctx context.Context, id uuid.UUID, patch P, actorID uuid.UUID) (*R, error) {
	if db, ok := s.db.(*sql.DB); ok {
		var updated *R
		err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			var txErr error
			updated, txErr = s.WithTx(tx).Update(ctx, id, patch, actorID)
			return txErr
		})
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 FOR UPDATE",
		s.columnList(), s.spec.Table)
	record, err := s.spec.ScanRow(s.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRecordNotFound
		}
		log.Error("failed to load record for update",
			slog.String("error", err.Error()),
			slog.String("table", s.spec.Table),
			slog.String("id", id.String()))
		return nil, err
	}

	if err := s.authorize(record, actorID); err != nil {
		log.Warn("record mutation forbidden",
			slog.String("table", s.spec.Table),
			slog.String("id", id.String()),
			slog.String("actor_id", actorID.String()))
		return nil, err
	}

	s.spec.ApplyPatch(record, patch)
	s.spec.Touch(record, actorID, s.now().UTC())

	if err := s.spec.Validate(record); err != nil {
		log.Warn("record validation failed during update",
			slog.String("error", err.Error()),
			slog.String("id", id.String()))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	args, err := s.spec.Args(record)
	if err != nil {
		return nil, err
	}

	sets := make([]string, 0, len(s.spec.Columns)-1)
	for i, col := range s.spec.Columns[1:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+2))
	}
	update := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1",
		s.spec.Table, strings.Join(sets, ", "))

	if _, err := s.db.ExecContext(ctx, update, args...); err != nil {
		if isUniqueViolation(err, "") {
			return nil, store.ErrDuplicate
		}
		log.Error("failed to update record",
			slog.String("error", err.Error()),
			slog.String("table", s.spec.Table),
			slog.String("id", id.String()))
		return nil, err
	}

	log.Info("record updated",
		slog.String("table", s.spec.Table),
		slog.String("id", id.String()))
	return record, nil
}

// Delete removes a record, reporting whether a row existed.
func (s *RecordStore[R, P]) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Owned resources need the row loaded to check the actor, so the
	// check and the delete run in one transaction.
	if s.spec.OwnerOf != nil {
		if db, ok := s.db.(*sql.DB); ok {
			var deleted bool
			err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
				var txErr error
				deleted, txErr = s.WithTx(tx).Delete(ctx, id, actorID)
				return txErr
			})
			return deleted, err
		}

		query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 FOR UPDATE",
			s.columnList(), s.spec.Table)
		record, err := s.spec.ScanRow(s.db.QueryRowContext(ctx, query, id).Scan)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		if err := s.authorize(record, actorID); err != nil {
			return false, err
		}
	}

	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.spec.Table), id)
	if err != nil {
		log.Error("failed to delete record",
			slog.String("error", err.Error()),
			slog.String("table", s.spec.Table),
			slog.String("id", id.String()))
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	log.Info("record deleted",
		slog.String("table", s.spec.Table),
		slog.String("id", id.String()))
	return true, nil
}

func (s *RecordStore[R, P]) authorize(record *R, actorID uuid.UUID) error {
	if s.spec.OwnerOf == nil {
		return nil
	}
	if owner := s.spec.OwnerOf(record); owner != actorID {
		return store.ErrUpdateForbidden
	}
	return nil
}
