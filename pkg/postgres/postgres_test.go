package postgres

import (
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/gramconnect/pkg/db"
)

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: db.ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: db.ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: db.ErrDuplicate},
		{name: "foreign key violation passes through", err: &pgconn.PgError{Code: "23503"}},
		{name: "other error passes through", err: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)
				return
			}
			assert.NotErrorIs(t, got, db.ErrNotFound)
			assert.NotErrorIs(t, got, db.ErrDuplicate)
		})
	}
}

func TestMigrationFiles_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_add_index.sql":      {Data: []byte("CREATE INDEX x ON jobs (status);")},
		"migrations/001_initial_schema.sql": {Data: []byte("CREATE TABLE jobs ();")},
		"migrations/README.md":              {Data: []byte("notes")},
		"migrations/archive/000_old.sql":    {Data: []byte("SELECT 1;")},
	}

	files, err := migrationFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_initial_schema.sql", "002_add_index.sql"}, files)
}

func TestMigrationFiles_EmbeddedSchema(t *testing.T) {
	files, err := migrationFiles(migrationsFS)
	require.NoError(t, err)
	assert.Contains(t, files, "001_initial_schema.sql")
}
