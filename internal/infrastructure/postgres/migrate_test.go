package postgres

import (
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_VersionesCrecientes(t *testing.T) {
	// sql.Open no conecta; goose solo lee las fuentes embebidas.
	db, err := sql.Open("pgx", "postgres://petmaison@127.0.0.1:1/petmaison")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	provider, err := newMigrationProvider(db)
	require.NoError(t, err)

	sources := provider.ListSources()
	require.NotEmpty(t, sources)
	assert.Equal(t, int64(1), sources[0].Version)
	for i := 1; i < len(sources); i++ {
		assert.Greater(t, sources[i].Version, sources[i-1].Version)
	}
}

func TestMigrations_TienenUpYDown(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	for _, name := range names {
		raw, err := migrationsFS.ReadFile(name)
		require.NoError(t, err)
		body := string(raw)
		assert.True(t, strings.HasPrefix(body, "-- +goose Up"), name)
		assert.Contains(t, body, "-- +goose Down", name)
	}
}
