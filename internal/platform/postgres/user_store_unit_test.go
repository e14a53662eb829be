package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// stubDB satisfies store.DBTX for constructor tests that never touch
// the database.
type stubDB struct{}

func (stubDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, sql.ErrConnDone
}

func (stubDB) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, sql.ErrConnDone
}

func (stubDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, sql.ErrConnDone
}

func (stubDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func TestNewPostgresUserStoreBcryptCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cost int
		want int
	}{
		{"zero falls back to default", 0, bcrypt.DefaultCost},
		{"negative falls back to default", -1, bcrypt.DefaultCost},
		{"below minimum falls back to default", bcrypt.MinCost - 1, bcrypt.DefaultCost},
		{"above maximum falls back to default", bcrypt.MaxCost + 1, bcrypt.DefaultCost},
		{"minimum kept", bcrypt.MinCost, bcrypt.MinCost},
		{"default kept", bcrypt.DefaultCost, bcrypt.DefaultCost},
		{"maximum kept", bcrypt.MaxCost, bcrypt.MaxCost},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := NewPostgresUserStore(stubDB{}, tc.cost, nil)
			assert.Equal(t, tc.want, s.bcryptCost)
		})
	}
}

func TestNewPostgresUserStoreNilDB(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewPostgresUserStore(nil, bcrypt.DefaultCost, nil) })
}
